package message_repo

import (
	"context"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageRepoContract interface {
	InsertMessage(ctx context.Context, msg *entity.Message) (primitive.ObjectID, *app_error.AppError)
	FindMessageByID(ctx context.Context, messageID string) (*entity.Message, *app_error.AppError)
	// ListMessages returns up to limit messages of the class in append order
	// (oldest first), ending before beforeID when set.
	ListMessages(ctx context.Context, classID string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError)
	UpdateContent(ctx context.Context, msg *entity.Message, originalTimestamp *time.Time) *app_error.AppError
	SoftDelete(ctx context.Context, messageID primitive.ObjectID, deletedAt time.Time) *app_error.AppError
}
