package user_service

import (
	"context"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/user_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
)

type UserServiceContract interface {
	Register(ctx context.Context, req user_dto.CreateUserRequest) (*user_dto.UserResponse, *app_error.AppError)
	Login(ctx context.Context, req user_dto.LoginRequest) (*user_dto.LoginResponse, *app_error.AppError)
}
