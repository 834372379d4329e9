package membership_repo

import (
	"context"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
)

type MembershipRepoContract interface {
	CreateClass(ctx context.Context, class *entity.Class, owner *entity.ClassMember) *app_error.AppError
	FindClassByID(ctx context.Context, classID string) (*entity.Class, *app_error.AppError)
	// AddMember is idempotent, the bool reports whether a new row was created.
	AddMember(ctx context.Context, member *entity.ClassMember) (*entity.ClassMember, bool, *app_error.AppError)
	// RemoveMember is idempotent, the bool reports whether a row existed.
	RemoveMember(ctx context.Context, classID, userID string) (bool, *app_error.AppError)
	FindMember(ctx context.Context, classID, userID string) (*entity.ClassMember, *app_error.AppError)
	ListMembers(ctx context.Context, classID string) ([]*entity.ClassMember, *app_error.AppError)
}
