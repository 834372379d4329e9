package class_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/class_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	class_service "github.com/QuangLP2607/DATN-final-sub001/internal/use-case/class-case"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ClassHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  class_service.ClassServiceContract
}

func NewClassHandler(state *state.AppState) *ClassHandler {
	return &ClassHandler{
		State:    state,
		Validate: validator.New(),
		Service:  class_service.NewClassService(state),
	}
}

func (h *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req class_dto.CreateClassRequest
	defer r.Body.Close()

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

	resp, err := h.Service.CreateClass(r.Context(), req, userID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("class created successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *ClassHandler) AddMember(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req class_dto.AddMemberRequest
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

	resp, err := h.Service.AddMember(r.Context(), classID, userID, req)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("member added successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *ClassHandler) RemoveMember(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")
	memberID := chi.URLParam(r, "userId")

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.Service.RemoveMember(r.Context(), classID, memberID, userID); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("member removed", map[string]any{
		"class_id": classID,
		"user_id":  memberID,
	}, handlers.RequestID(r)))

	return nil
}

func (h *ClassHandler) GetMembers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	resp, err := h.Service.ListMembers(r.Context(), classID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("members fetch successfully", *resp, handlers.RequestID(r)))

	return nil
}
