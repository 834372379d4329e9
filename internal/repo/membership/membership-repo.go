package membership_repo

import (
	"context"
	"errors"
	"net/http"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MembershipRepo struct {
	AppState *state.AppState
}

func NewMembershipRepo(appState *state.AppState) MembershipRepoContract {
	return &MembershipRepo{
		AppState: appState,
	}
}

func (r *MembershipRepo) CreateClass(ctx context.Context, class *entity.Class, owner *entity.ClassMember) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(class).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to create class", "db-error")
	}

	owner.ClassID = class.ID.String()
	if err := tx.Create(owner).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to enroll class owner", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to commit class creation", "db-error")
	}

	return nil
}

func (r *MembershipRepo) FindClassByID(ctx context.Context, classID string) (*entity.Class, *app_error.AppError) {
	var class entity.Class
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", classID).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("class not found", "class-id")
		}
		log.Error().Err(err).Msgf("failed to fetch class %s", classID)
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch class", "db-error")
	}
	return &class, nil
}

func (r *MembershipRepo) AddMember(ctx context.Context, member *entity.ClassMember) (*entity.ClassMember, bool, *app_error.AppError) {
	existing, appErr := r.findMember(ctx, member.ClassID, member.UserID)
	if appErr == nil {
		return existing, false, nil
	}
	if appErr.Code != http.StatusNotFound {
		return nil, false, appErr
	}

	if err := r.AppState.DB.WithContext(ctx).Create(member).Error; err != nil {
		// lost a race against a concurrent add for the same (class, user)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, appErr := r.findMember(ctx, member.ClassID, member.UserID)
			if appErr != nil {
				return nil, false, appErr
			}
			return existing, false, nil
		}
		return nil, false, app_error.NewAppError(http.StatusInternalServerError, "failed to add class member", "db-error")
	}

	return member, true, nil
}

func (r *MembershipRepo) RemoveMember(ctx context.Context, classID, userID string) (bool, *app_error.AppError) {
	result := r.AppState.DB.WithContext(ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&entity.ClassMember{})
	if result.Error != nil {
		return false, app_error.NewAppError(http.StatusInternalServerError, "failed to remove class member", "db-error")
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepo) FindMember(ctx context.Context, classID, userID string) (*entity.ClassMember, *app_error.AppError) {
	return r.findMember(ctx, classID, userID)
}

func (r *MembershipRepo) findMember(ctx context.Context, classID, userID string) (*entity.ClassMember, *app_error.AppError) {
	var member entity.ClassMember
	if err := r.AppState.DB.WithContext(ctx).
		Where("class_id = ? AND user_id = ?", classID, userID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("member not found", "member")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch class member", "db-error")
	}
	return &member, nil
}

func (r *MembershipRepo) ListMembers(ctx context.Context, classID string) ([]*entity.ClassMember, *app_error.AppError) {
	var members []*entity.ClassMember
	if err := r.AppState.DB.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("joined_at ASC, id ASC"). // insertion order
		Find(&members).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch class members", "db-error")
	}

	return members, nil
}
