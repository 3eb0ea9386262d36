package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/trainee-timetable/internal/application"
	"github.com/example/trainee-timetable/internal/scheduler"
)

type sessionService interface {
	SessionsInSlot(ctx context.Context, query application.SlotQuery) ([]scheduler.Session, error)
	CreateSession(ctx context.Context, input scheduler.SessionInput) (scheduler.Session, error)
	UpdateSession(ctx context.Context, id string, edit scheduler.SessionEdit) (scheduler.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type SessionHandler struct {
	service   sessionService
	responder responder
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: service, responder: newResponder(logger)}
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	sessions, err := h.service.SessionsInSlot(r.Context(), application.SlotQuery{
		Week: query.Get("week"),
		Day:  query.Get("day"),
		Time: query.Get("time"),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{Sessions: toSessionDTOs(sessions)})
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createSessionRequest
	if err := h.responder.decode(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	session, err := h.service.CreateSession(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, sessionResponse{Session: toSessionDTO(session)})
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSession)
		return
	}

	var req updateSessionRequest
	if err := h.responder.decode(r, &req); err != nil {
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	session, err := h.service.UpdateSession(r.Context(), sessionID, req.toEdit())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Session: toSessionDTO(session)})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSession)
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// createSessionRequest pins a session to a slot. Day is a pointer so that a
// missing day is told apart from Monday.
type createSessionRequest struct {
	TraineeID string `json:"trainee_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	Week      string `json:"week"`
	Day       *int   `json:"day" validate:"required,min=0,max=6"`
	Time      string `json:"time"`
}

func (r createSessionRequest) toInput() scheduler.SessionInput {
	input := scheduler.SessionInput{
		TraineeID: r.TraineeID,
		Title:     r.Title,
		Type:      r.Type,
		Notes:     r.Notes,
		Week:      r.Week,
		Time:      r.Time,
	}
	if r.Day != nil {
		input.Day = *r.Day
	}
	return input
}

type updateSessionRequest struct {
	TraineeID string `json:"trainee_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
}

func (r updateSessionRequest) toEdit() scheduler.SessionEdit {
	return scheduler.SessionEdit{
		TraineeID: r.TraineeID,
		Title:     r.Title,
		Type:      r.Type,
		Notes:     r.Notes,
	}
}

type sessionResponse struct {
	Session sessionDTO `json:"session"`
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}

type sessionDTO struct {
	ID        string `json:"id"`
	TraineeID string `json:"trainee_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Notes     string `json:"notes,omitempty"`
	Week      string `json:"week"`
	Day       int    `json:"day"`
	Time      string `json:"time"`
}

func toSessionDTO(session scheduler.Session) sessionDTO {
	return sessionDTO{
		ID:        session.ID,
		TraineeID: session.TraineeID,
		Title:     session.Title,
		Type:      session.Type,
		Notes:     session.Notes,
		Week:      session.Week,
		Day:       session.Day,
		Time:      session.Time,
	}
}

func toSessionDTOs(sessions []scheduler.Session) []sessionDTO {
	out := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out
}
