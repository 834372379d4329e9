package quiz_repo

import (
	"context"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
)

type QuizRepoContract interface {
	CreateQuiz(ctx context.Context, quiz *entity.Quiz) *app_error.AppError
	// FindQuizByID loads the quiz with its questions in position order.
	FindQuizByID(ctx context.Context, quizID string) (*entity.Quiz, *app_error.AppError)
	ReplaceQuestions(ctx context.Context, quizID string, questions []entity.QuizQuestion) *app_error.AppError
	// CreateAttempt inserts exactly one attempt per (quiz, student). A
	// duplicate, sequential or concurrent, comes back as Conflict.
	CreateAttempt(ctx context.Context, attempt *entity.QuizAttempt) *app_error.AppError
	FindAttempt(ctx context.Context, quizID, studentID string) (*entity.QuizAttempt, *app_error.AppError)
	ListAttempts(ctx context.Context, quizID string) ([]*entity.QuizAttempt, *app_error.AppError)
}
