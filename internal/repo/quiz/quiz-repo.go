package quiz_repo

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

type QuizRepo struct {
	AppState *state.AppState
}

func NewQuizRepo(appState *state.AppState) QuizRepoContract {
	return &QuizRepo{
		AppState: appState,
	}
}

func (r *QuizRepo) CreateQuiz(ctx context.Context, quiz *entity.Quiz) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(quiz).Error; err != nil {
		log.Error().Err(err).Msg("failed to create quiz")
		return app_error.NewAppError(http.StatusInternalServerError, "failed to create quiz", "db-error")
	}
	return nil
}

func (r *QuizRepo) FindQuizByID(ctx context.Context, quizID string) (*entity.Quiz, *app_error.AppError) {
	var quiz entity.Quiz
	err := r.AppState.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", quizID).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("quiz not found", "quiz-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch quiz", "db-error")
	}
	return &quiz, nil
}

func (r *QuizRepo) ReplaceQuestions(ctx context.Context, quizID string, questions []entity.QuizQuestion) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("quiz_id = ?", quizID).Delete(&entity.QuizQuestion{}).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to clear quiz questions", "db-error")
	}

	for i := range questions {
		questions[i].QuizID = quizID
	}
	if err := tx.Create(&questions).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to save quiz questions", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to commit question update", "db-error")
	}

	return nil
}

func (r *QuizRepo) CreateAttempt(ctx context.Context, attempt *entity.QuizAttempt) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(attempt).Error; err != nil {
		// the unique index on (quiz_id, student_id) is what makes the
		// check-and-insert atomic under concurrent submissions
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return app_error.Conflict("quiz already submitted by this student", "quiz-attempt")
		}
		log.Error().Err(err).Msg("failed to create quiz attempt")
		return app_error.NewAppError(http.StatusInternalServerError, "failed to save quiz attempt", "db-error")
	}
	return nil
}

func (r *QuizRepo) FindAttempt(ctx context.Context, quizID, studentID string) (*entity.QuizAttempt, *app_error.AppError) {
	var attempt entity.QuizAttempt
	err := r.AppState.DB.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("quiz attempt not found", "quiz-attempt")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch quiz attempt", "db-error")
	}
	return &attempt, nil
}

func (r *QuizRepo) ListAttempts(ctx context.Context, quizID string) ([]*entity.QuizAttempt, *app_error.AppError) {
	var attempts []*entity.QuizAttempt
	if err := r.AppState.DB.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("submitted_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch quiz attempts", "db-error")
	}
	return attempts, nil
}
