package quiz_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/quiz_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	quiz_service "github.com/QuangLP2607/DATN-final-sub001/internal/use-case/quiz-case"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type QuizHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  quiz_service.QuizServiceContract
}

func NewQuizHandler(state *state.AppState) *QuizHandler {
	return &QuizHandler{
		State:    state,
		Validate: validator.New(),
		Service:  quiz_service.NewQuizService(state),
	}
}

func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req quiz_dto.CreateQuizRequest
	defer r.Body.Close()

	classID := chi.URLParam(r, "classId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.CreateQuiz(r.Context(), classID, userID, req)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("quiz created successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *QuizHandler) UpdateQuestions(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req quiz_dto.UpdateQuestionsRequest
	defer r.Body.Close()

	quizID := chi.URLParam(r, "quizId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.Service.UpdateQuestions(r.Context(), quizID, userID, req); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("questions updated", map[string]any{
		"quiz_id": quizID,
	}, handlers.RequestID(r)))

	return nil
}

func (h *QuizHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req quiz_dto.SubmitAttemptRequest
	defer r.Body.Close()

	quizID := chi.URLParam(r, "quizId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.Submit(r.Context(), quizID, userID, req.Answers)
	if err != nil {
		// A duplicate submission keeps the first attempt. Echo the stored
		// result back instead of failing the request.
		if err.Code == http.StatusConflict && resp != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(handlers.CreateResponse("quiz already submitted, returning first attempt", *resp, handlers.RequestID(r)))
			return nil
		}
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("attempt submitted successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *QuizHandler) GetMyAttempt(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	quizID := chi.URLParam(r, "quizId")

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.GetAttempt(r.Context(), quizID, userID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("attempt fetch successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *QuizHandler) GetAttempts(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	quizID := chi.URLParam(r, "quizId")

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.ListAttempts(r.Context(), quizID, userID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("attempts fetch successfully", *resp, handlers.RequestID(r)))

	return nil
}
