package routers

import (
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	chat_handler "github.com/QuangLP2607/DATN-final-sub001/internal/handlers/chat-handler"
	"github.com/QuangLP2607/DATN-final-sub001/internal/middleware"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
)

func ChatRouter(r chi.Router, state *state.AppState) {
	chatHandler := chat_handler.NewChatHandler(state)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Post("/api/v1/classes/{classId}/messages", handlers.WrapHandler(chatHandler.PostMessage))
		protected.Get("/api/v1/classes/{classId}/messages", handlers.WrapHandler(chatHandler.GetMessages))
		protected.Put("/api/v1/messages/{messageId}", handlers.WrapHandler(chatHandler.EditMessage))
		protected.Delete("/api/v1/messages/{messageId}", handlers.WrapHandler(chatHandler.DeleteMessage))
	})
}
