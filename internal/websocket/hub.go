package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hub fans events out to connected class members. Rooms are keyed by class
// id; events for one class are delivered in the order they are broadcast.
type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	userClients map[string][]*Client // userID -> [clients]
	userMu      sync.RWMutex

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	TotalClasses     int   `json:"total_classes"`
	TotalClients     int   `json:"total_clients"`
	TotalConnections int64 `json:"total_connections"`
	MessagesSent     int64 `json:"messages_sent"`
}

func NewHub() *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		userClients: make(map[string][]*Client),
	}
}

// Register adds a client to a class room and starts its pumps.
func (h *Hub) Register(classID string, client *Client) {
	h.mu.Lock()
	if h.rooms[classID] == nil {
		h.rooms[classID] = make(map[*Client]struct{})
	}
	h.rooms[classID][client] = struct{}{}
	roomSize := len(h.rooms[classID])
	h.mu.Unlock()

	h.userMu.Lock()
	h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
	h.userMu.Unlock()

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	client.Start(h)

	log.Info().Str("classID", classID).Str("clientID", client.ID).Str("userID", client.UserID).Int("roomSize", roomSize).Msg("ws: client registered to class")
}

// Unregister removes a client from a class room.
func (h *Hub) Unregister(classID string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[classID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, classID)
		}
	}
	h.mu.Unlock()

	h.userMu.Lock()
	userClients := h.userClients[client.UserID]
	for i, c := range userClients {
		if c == client {
			h.userClients[client.UserID] = append(userClients[:i], userClients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.userMu.Unlock()

	log.Info().Str("classID", classID).Str("clientID", client.ID).Str("userID", client.UserID).Msg("ws: client unregistered from class")
}

// BroadcastToClass sends a message to all clients in a class room.
func (h *Hub) BroadcastToClass(classID string, message OutgoingMessage) {
	h.broadcastInternal(classID, message, "")
}

// BroadcastToClassExcept skips the given user's connections, used so a
// sender does not receive their own event back.
func (h *Hub) BroadcastToClassExcept(classID string, message OutgoingMessage, exceptUserID string) {
	h.broadcastInternal(classID, message, exceptUserID)
}

func (h *Hub) broadcastInternal(classID string, message OutgoingMessage, exceptUserID string) {
	message.ClassID = classID
	if message.Timestamp == 0 {
		message.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Str("classID", classID).Msg("ws: failed to marshal broadcast message")
		return
	}

	// snapshot under the read lock, send outside of it
	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[classID]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			if exceptUserID != "" && client.UserID == exceptUserID {
				continue
			}
			if client.Active() {
				targets = append(targets, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	for _, client := range targets {
		select {
		case client.Send <- data:
		case <-client.ctx.Done():
		default:
			// slow consumer, drop the connection rather than the whole room
			log.Warn().Str("classID", classID).Str("clientID", client.ID).Msg("ws: slow consumer, closing")
			go client.Close()
		}
	}

	h.updateStats(func(stats *HubStats) {
		stats.MessagesSent += int64(len(targets))
	})

	log.Debug().Str("classID", classID).Int("targets", len(targets)).Str("messageType", message.Type).Msg("ws: broadcast completed")
}

// IsUserOnline reports whether the user has any active connection in the class.
func (h *Hub) IsUserOnline(classID, userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[classID] {
		if client.UserID == userID && client.Active() {
			return true
		}
	}
	return false
}

func (h *Hub) GetClassStats(classID string) map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := map[string]any{
		"class_id": classID,
		"exists":   false,
	}

	if clients, ok := h.rooms[classID]; ok {
		active := 0
		uniqueUsers := make(map[string]bool)
		for client := range clients {
			if client.Active() {
				active++
				uniqueUsers[client.UserID] = true
			}
		}
		stats["exists"] = true
		stats["total_connections"] = len(clients)
		stats["active_connections"] = active
		stats["unique_users"] = len(uniqueUsers)
	}

	return stats
}

func (h *Hub) GetHubStats() HubStats {
	h.statsMu.RLock()
	stats := h.stats
	h.statsMu.RUnlock()

	h.mu.RLock()
	stats.TotalClasses = len(h.rooms)
	total := 0
	for _, clients := range h.rooms {
		total += len(clients)
	}
	stats.TotalClients = total
	h.mu.RUnlock()

	return stats
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}
