package routers

import (
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	quiz_handler "github.com/QuangLP2607/DATN-final-sub001/internal/handlers/quiz-handler"
	"github.com/QuangLP2607/DATN-final-sub001/internal/middleware"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
)

func QuizRouter(r chi.Router, state *state.AppState) {
	quizHandler := quiz_handler.NewQuizHandler(state)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Post("/api/v1/classes/{classId}/quizzes", handlers.WrapHandler(quizHandler.CreateQuiz))
		protected.Route("/api/v1/quizzes/{quizId}", func(r chi.Router) {
			r.Put("/questions", handlers.WrapHandler(quizHandler.UpdateQuestions))
			r.Post("/attempts", handlers.WrapHandler(quizHandler.SubmitAttempt))
			r.Get("/attempts", handlers.WrapHandler(quizHandler.GetAttempts))
			r.Get("/attempts/me", handlers.WrapHandler(quizHandler.GetMyAttempt))
		})
	})
}
