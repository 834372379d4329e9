package chat_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/chat_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	chat_service "github.com/QuangLP2607/DATN-final-sub001/internal/use-case/chat-case"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ChatHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  chat_service.ChatServiceContract
}

func NewChatHandler(state *state.AppState) *ChatHandler {
	validate := validator.New()
	validate.RegisterValidation("objectID", chat_dto.ObjectIDValidator)
	return &ChatHandler{
		State:    state,
		Validate: validate,
		Service:  chat_service.NewChatService(state),
	}
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.PostMessageRequest
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

	resp, err := h.Service.PostMessage(r.Context(), classID, userID, req)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message posted successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	req := chat_dto.ListMessagesRequest{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return app_error.InvalidArgument("limit must be a number", "limit")
		}
		req.Limit = limit
	}
	if before := r.URL.Query().Get("before_id"); before != "" {
		req.BeforeID = &before
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.ListMessages(r.Context(), classID, req)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("messages fetch successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.EditMessageRequest
	defer r.Body.Close()

	messageID := chi.URLParam(r, "messageId")

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

	resp, err := h.Service.EditMessage(r.Context(), messageID, userID, req)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message edited successfully", *resp, handlers.RequestID(r)))

	return nil
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	messageID := chi.URLParam(r, "messageId")

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.Service.SoftDeleteMessage(r.Context(), messageID, userID); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message deleted", map[string]any{
		"message_id": messageID,
		"deleted":    true,
	}, handlers.RequestID(r)))

	return nil
}
