package hub_handler

import (
	"encoding/json"
	"net/http"
	"time"

	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	"github.com/QuangLP2607/DATN-final-sub001/internal/websocket"
	"github.com/go-chi/chi/v5"
)

type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{
		Hub: hub,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "classroom-server",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.GetHubStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket stats", stats, handlers.RequestID(r)))
	return nil
}

func (h *HubHandler) HandleGetClassStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")
	stats := h.Hub.GetClassStats(classID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket class stats", stats, handlers.RequestID(r)))
	return nil
}

func (h *HubHandler) HandleGetUserStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")
	userID := chi.URLParam(r, "userId")

	resp := map[string]any{
		"class_id": classID,
		"user_id":  userID,
		"online":   h.Hub.IsUserOnline(classID, userID),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get user status", resp, handlers.RequestID(r)))
	return nil
}
