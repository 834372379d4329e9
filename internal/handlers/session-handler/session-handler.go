package session_handler

import (
	"encoding/json"
	"net/http"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/class_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/handlers"
	session_service "github.com/QuangLP2607/DATN-final-sub001/internal/use-case/session-case"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	State   *state.AppState
	Service session_service.SessionServiceContract
}

func NewSessionHandler(state *state.AppState) *SessionHandler {
	return &SessionHandler{
		State:   state,
		Service: session_service.NewSessionManager(state),
	}
}

func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	session, err := h.Service.Join(r.Context(), classID, userID)
	if err != nil {
		return err
	}

	resp := class_dto.JoinSessionResponse{
		ClassID:   session.ClassID,
		RoomID:    session.RoomID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("joined live session", resp, handlers.RequestID(r)))

	return nil
}

func (h *SessionHandler) LeaveSession(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	userID, appErr := handlers.UserID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.Service.Leave(r.Context(), classID, userID); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("left live session", map[string]any{
		"class_id":     classID,
		"participants": h.Service.Participants(classID),
	}, handlers.RequestID(r)))

	return nil
}
