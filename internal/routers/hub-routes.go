package routers

import (
	"net/http"

	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	hub_handler "github.com/QuangLP2607/DATN-final-sub001/internal/handlers/hub-handler"
	membership_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/membership"
	"github.com/QuangLP2607/DATN-final-sub001/internal/websocket"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
)

func HubRouter(r chi.Router, wsHub *websocket.Hub) {
	hubHandler := hub_handler.NewHubHandler(wsHub)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))

		r.Route("/classes/{classId}/hub", func(r chi.Router) {
			r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetClassStats))
			r.Get("/users/{userId}/status", handlers.WrapHandler(hubHandler.HandleGetUserStatus))
		})
	})
}

func WebSocketRouter(r chi.Router, state *state.AppState, wsHub *websocket.Hub) {
	members := membership_repo.NewMembershipRepo(state)
	isMember := func(req *http.Request, classID, userID string) bool {
		member, err := members.FindMember(req.Context(), classID, userID)
		return err == nil && member != nil
	}

	wsHandler := websocket.NewWebSocketHandler(wsHub, websocket.JWTWebSocketAuth(state.JwtSecret.Public), isMember)
	r.Get("/ws", wsHandler.HandleWS)
}
