package routers

import (
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	class_handler "github.com/QuangLP2607/DATN-final-sub001/internal/handlers/class-handler"
	session_handler "github.com/QuangLP2607/DATN-final-sub001/internal/handlers/session-handler"
	"github.com/QuangLP2607/DATN-final-sub001/internal/middleware"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
)

func ClassRouter(r chi.Router, state *state.AppState) {
	classHandler := class_handler.NewClassHandler(state)
	sessionHandler := session_handler.NewSessionHandler(state)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Post("/api/v1/classes", handlers.WrapHandler(classHandler.CreateClass))
		protected.Route("/api/v1/classes/{classId}", func(r chi.Router) {
			r.Get("/members", handlers.WrapHandler(classHandler.GetMembers))
			r.Post("/members", handlers.WrapHandler(classHandler.AddMember))
			r.Delete("/members/{userId}", handlers.WrapHandler(classHandler.RemoveMember))

			r.Post("/session/join", handlers.WrapHandler(sessionHandler.JoinSession))
			r.Post("/session/leave", handlers.WrapHandler(sessionHandler.LeaveSession))
		})
	})
}
