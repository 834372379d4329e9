package chat_service

import (
	"context"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/chat_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
)

type ChatServiceContract interface {
	PostMessage(ctx context.Context, classID, senderID string, req chat_dto.PostMessageRequest) (*chat_dto.MessageResponse, *app_error.AppError)
	EditMessage(ctx context.Context, messageID, editorID string, req chat_dto.EditMessageRequest) (*chat_dto.MessageResponse, *app_error.AppError)
	SoftDeleteMessage(ctx context.Context, messageID, requesterID string) *app_error.AppError
	ListMessages(ctx context.Context, classID string, req chat_dto.ListMessagesRequest) (*chat_dto.ListMessagesResponse, *app_error.AppError)
}
