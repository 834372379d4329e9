package quiz_service

import (
	"context"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/quiz_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
)

type QuizServiceContract interface {
	CreateQuiz(ctx context.Context, classID, creatorID string, req quiz_dto.CreateQuizRequest) (*quiz_dto.QuizResponse, *app_error.AppError)
	UpdateQuestions(ctx context.Context, quizID, requesterID string, req quiz_dto.UpdateQuestionsRequest) *app_error.AppError
	// Submit records exactly one attempt per (quiz, student). On a duplicate
	// it returns the stored first attempt together with a Conflict error.
	Submit(ctx context.Context, quizID, studentID string, answers []int) (*quiz_dto.AttemptResponse, *app_error.AppError)
	GetAttempt(ctx context.Context, quizID, studentID string) (*quiz_dto.AttemptResponse, *app_error.AppError)
	ListAttempts(ctx context.Context, quizID, requesterID string) (*quiz_dto.ListAttemptsResponse, *app_error.AppError)
}
