package quiz_service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/config"
	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/quiz_dto"
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	membership_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/membership"
	quiz_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/quiz"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/google/uuid"
)

type QuizService struct {
	AppState   *state.AppState
	Quizzes    quiz_repo.QuizRepoContract
	Membership membership_repo.MembershipRepoContract
	Policy     ScoringPolicy
}

func NewQuizService(appState *state.AppState) QuizServiceContract {
	policy := PolicyProportional
	if config.Conf != nil && config.Conf.QUIZ.ScoringPolicy != "" {
		policy = ScoringPolicy(config.Conf.QUIZ.ScoringPolicy)
	}
	return &QuizService{
		AppState:   appState,
		Quizzes:    quiz_repo.NewQuizRepo(appState),
		Membership: membership_repo.NewMembershipRepo(appState),
		Policy:     policy,
	}
}

func (s *QuizService) CreateQuiz(ctx context.Context, classID, creatorID string, req quiz_dto.CreateQuizRequest) (*quiz_dto.QuizResponse, *app_error.AppError) {
	if _, err := s.Membership.FindClassByID(ctx, classID); err != nil {
		return nil, err
	}
	if err := s.requireTeacher(ctx, classID, creatorID); err != nil {
		return nil, err
	}

	questions, appErr := buildQuestions(req.Questions)
	if appErr != nil {
		return nil, appErr
	}

	totalScore := req.TotalScore
	if totalScore == 0 {
		totalScore = 100
	}

	quiz := &entity.Quiz{
		ID:         uuid.New(),
		ClassID:    classID,
		Title:      req.Title,
		TotalScore: totalScore,
		CreatedBy:  creatorID,
		Questions:  questions,
	}

	if err := s.Quizzes.CreateQuiz(ctx, quiz); err != nil {
		return nil, err
	}

	return &quiz_dto.QuizResponse{
		QuizID:     quiz.ID.String(),
		ClassID:    quiz.ClassID,
		Title:      quiz.Title,
		TotalScore: quiz.TotalScore,
		Questions:  len(quiz.Questions),
	}, nil
}

func (s *QuizService) UpdateQuestions(ctx context.Context, quizID, requesterID string, req quiz_dto.UpdateQuestionsRequest) *app_error.AppError {
	quiz, err := s.Quizzes.FindQuizByID(ctx, quizID)
	if err != nil {
		return err
	}
	if err := s.requireTeacher(ctx, quiz.ClassID, requesterID); err != nil {
		return err
	}

	questions, appErr := buildQuestions(req.Questions)
	if appErr != nil {
		return appErr
	}

	return s.Quizzes.ReplaceQuestions(ctx, quizID, questions)
}

func (s *QuizService) Submit(ctx context.Context, quizID, studentID string, answers []int) (*quiz_dto.AttemptResponse, *app_error.AppError) {
	quiz, err := s.Quizzes.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Membership.FindMember(ctx, quiz.ClassID, studentID); err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.Forbidden("student is not a member of this class", "membership")
		}
		return nil, err
	}

	if len(answers) != len(quiz.Questions) {
		return nil, app_error.InvalidArgument(
			fmt.Sprintf("expected %d answers, got %d", len(quiz.Questions), len(answers)), "answers")
	}

	correct := make([]bool, len(answers))
	for i, answer := range answers {
		q := quiz.Questions[i]
		if answer < 0 || answer >= len(q.Options) {
			return nil, app_error.InvalidArgument(
				fmt.Sprintf("answer %d is out of range for question %d", answer, i), "answers")
		}
		correct[i] = answer == q.CorrectIndex
	}

	correctCount, score := s.Policy.Score(quiz, correct)

	attempt := &entity.QuizAttempt{
		QuizID:       quizID,
		StudentID:    studentID,
		Answers:      answers,
		CorrectCount: correctCount,
		Score:        score,
		SubmittedAt:  time.Now(),
	}

	if err := s.Quizzes.CreateAttempt(ctx, attempt); err != nil {
		if err.Code == http.StatusConflict {
			// surface the stored first attempt so the caller can show its
			// result instead of a bare error
			if existing, findErr := s.Quizzes.FindAttempt(ctx, quizID, studentID); findErr == nil {
				return attemptToResponse(existing), err
			}
		}
		return nil, err
	}

	return attemptToResponse(attempt), nil
}

func (s *QuizService) GetAttempt(ctx context.Context, quizID, studentID string) (*quiz_dto.AttemptResponse, *app_error.AppError) {
	attempt, err := s.Quizzes.FindAttempt(ctx, quizID, studentID)
	if err != nil {
		return nil, err
	}
	return attemptToResponse(attempt), nil
}

func (s *QuizService) ListAttempts(ctx context.Context, quizID, requesterID string) (*quiz_dto.ListAttemptsResponse, *app_error.AppError) {
	quiz, err := s.Quizzes.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTeacher(ctx, quiz.ClassID, requesterID); err != nil {
		return nil, err
	}

	attempts, err := s.Quizzes.ListAttempts(ctx, quizID)
	if err != nil {
		return nil, err
	}

	resp := &quiz_dto.ListAttemptsResponse{
		QuizID:   quizID,
		Attempts: make([]quiz_dto.AttemptResponse, 0, len(attempts)),
	}
	for _, a := range attempts {
		resp.Attempts = append(resp.Attempts, *attemptToResponse(a))
	}
	return resp, nil
}

func (s *QuizService) requireTeacher(ctx context.Context, classID, userID string) *app_error.AppError {
	member, err := s.Membership.FindMember(ctx, classID, userID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return app_error.Forbidden("requester is not a member of this class", "membership")
		}
		return err
	}
	if member.Role != entity.RoleTeacher {
		return app_error.Forbidden("teacher role required", "role")
	}
	return nil
}

func buildQuestions(payloads []quiz_dto.QuestionPayload) ([]entity.QuizQuestion, *app_error.AppError) {
	questions := make([]entity.QuizQuestion, 0, len(payloads))
	for i, q := range payloads {
		// the validator cannot cross-check index against option count
		if q.CorrectIndex >= len(q.Options) {
			return nil, app_error.InvalidArgument(
				fmt.Sprintf("correct_index out of range for question %d", i), "questions")
		}
		points := q.Points
		if points == 0 {
			points = 1
		}
		questions = append(questions, entity.QuizQuestion{
			Content:      q.Content,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Points:       points,
			Position:     q.Order,
		})
	}
	return questions, nil
}

func attemptToResponse(a *entity.QuizAttempt) *quiz_dto.AttemptResponse {
	return &quiz_dto.AttemptResponse{
		QuizID:       a.QuizID,
		StudentID:    a.StudentID,
		Answers:      a.Answers,
		CorrectCount: a.CorrectCount,
		Score:        a.Score,
		SubmittedAt:  a.SubmittedAt,
	}
}
