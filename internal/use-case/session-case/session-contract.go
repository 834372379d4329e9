package session_service

import (
	"context"

	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
)

type SessionServiceContract interface {
	// Join admits a member into the class live room, minting credentials on
	// demand. Concurrent joins for the same class share one broker call.
	Join(ctx context.Context, classID, userID string) (*types.LiveRoomSession, *app_error.AppError)
	// Leave is idempotent. When the last participant leaves, the session is
	// closed and its token invalidated.
	Leave(ctx context.Context, classID, userID string) *app_error.AppError
	Participants(classID string) int
}
