package routers

import (
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	user_handler "github.com/QuangLP2607/DATN-final-sub001/internal/handlers/user-handler"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
)

func UserRouter(r chi.Router, state *state.AppState) {
	userHandler := user_handler.NewUserHandler(state)

	r.Post("/api/v1/users", handlers.WrapHandler(userHandler.CreateUser))
	r.Post("/api/v1/users/login", handlers.WrapHandler(userHandler.Login))
}
