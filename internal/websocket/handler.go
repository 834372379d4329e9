package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

// MembershipCheck gates the handshake: only class members may subscribe to
// the class feed.
type MembershipCheck func(r *http.Request, classID, userID string) bool

type WebSocketHandler struct {
	Hub           *Hub
	authenticator AuthenticatorFunc
	isMember      MembershipCheck
}

func NewWebSocketHandler(hub *Hub, auth AuthenticatorFunc, isMember MembershipCheck) *WebSocketHandler {
	return &WebSocketHandler{
		Hub:           hub,
		authenticator: auth,
		isMember:      isMember,
	}
}

func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	classID := r.URL.Query().Get("class_id")
	if classID == "" {
		http.Error(w, "class_id is required", http.StatusBadRequest)
		return
	}

	userID, err := h.authenticator(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if h.isMember != nil && !h.isMember(r, classID, userID) {
		http.Error(w, "not a member of this class", http.StatusForbidden)
		return
	}

	conn, upgradeErr := upgrader.Upgrade(w, r, nil)
	if upgradeErr != nil {
		log.Error().Err(upgradeErr).Msg("ws: upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), userID, classID, conn)
	h.Hub.Register(classID, client)
}
