package routers

import (
	"net/http"

	"github.com/QuangLP2607/DATN-final-sub001/internal/middleware"
	"github.com/QuangLP2607/DATN-final-sub001/internal/websocket"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func NewRouter(state *state.AppState, wsHub *websocket.Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	UserRouter(r, state)
	ClassRouter(r, state)
	ChatRouter(r, state)
	QuizRouter(r, state)
	HubRouter(r, wsHub)
	WebSocketRouter(r, state, wsHub)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
