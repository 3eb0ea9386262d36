package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/trainee-timetable/internal/application"
	"github.com/example/trainee-timetable/internal/scheduler"
)

type traineeService interface {
	ListTrainees(ctx context.Context) ([]scheduler.Trainee, error)
	CreateTrainee(ctx context.Context, input scheduler.TraineeInput) (scheduler.Trainee, error)
	UpdateTrainee(ctx context.Context, id string, input scheduler.TraineeInput) (scheduler.Trainee, error)
	DeleteTrainee(ctx context.Context, id string) (scheduler.Cascade, error)
	WeeklyStats(ctx context.Context, id, date, excludeBookingID string) (application.TraineeWeek, error)
}

type TraineeHandler struct {
	service   traineeService
	responder responder
	logger    *slog.Logger
}

func NewTraineeHandler(service traineeService, logger *slog.Logger) *TraineeHandler {
	base := defaultLogger(logger)
	return &TraineeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *TraineeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TraineeHandler", operation, attrs...)
}

func (h *TraineeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	trainees, err := h.service.ListTrainees(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "List").With("result_count", len(trainees)).DebugContext(r.Context(), "trainees listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTraineesResponse{Trainees: toTraineeDTOs(trainees)})
}

func (h *TraineeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req traineeRequest
	if err := h.responder.decode(r, &req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode trainee request", "error", err)
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	trainee, err := h.service.CreateTrainee(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, traineeResponse{Trainee: toTraineeDTO(trainee)})
}

func (h *TraineeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	traineeID, ok := TraineeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(traineeID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").WarnContext(r.Context(), "missing trainee id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTrainee)
		return
	}

	var req traineeRequest
	if err := h.responder.decode(r, &req); err != nil {
		h.log(r.Context(), "Update", "trainee_id", traineeID, "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode trainee update", "error", err)
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	trainee, err := h.service.UpdateTrainee(r.Context(), traineeID, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, traineeResponse{Trainee: toTraineeDTO(trainee)})
}

func (h *TraineeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	traineeID, ok := TraineeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(traineeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTrainee)
		return
	}

	cascade, err := h.service.DeleteTrainee(r.Context(), traineeID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, deleteTraineeResponse{
		SessionsRemoved: cascade.Sessions,
		BookingsRemoved: cascade.Bookings,
	})
}

func (h *TraineeHandler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	traineeID, ok := TraineeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(traineeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTrainee)
		return
	}

	query := r.URL.Query()
	week, err := h.service.WeeklyStats(r.Context(), traineeID, query.Get("date"), query.Get("exclude"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, weeklyStatsDTO{
		TraineeID: traineeID,
		WeekStart: week.WeekStart,
		Planned:   week.Planned,
		Present:   week.Present,
		Total:     week.Total,
		Cap:       week.Cap,
		Remaining: week.Remaining,
		Available: week.Available,
	})
}

type traineeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Color string `json:"color"`
}

func (r traineeRequest) toInput() scheduler.TraineeInput {
	return scheduler.TraineeInput{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Color: strings.TrimSpace(r.Color),
	}
}

type traineeResponse struct {
	Trainee traineeDTO `json:"trainee"`
}

type listTraineesResponse struct {
	Trainees []traineeDTO `json:"trainees"`
}

type deleteTraineeResponse struct {
	SessionsRemoved int `json:"sessions_removed"`
	BookingsRemoved int `json:"bookings_removed"`
}

type traineeDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Color         string `json:"color"`
	GradientColor string `json:"gradient_color"`
}

type weeklyStatsDTO struct {
	TraineeID string `json:"trainee_id"`
	WeekStart string `json:"week_start"`
	Planned   int    `json:"planned"`
	Present   int    `json:"present"`
	Total     int    `json:"total"`
	Cap       int    `json:"cap"`
	Remaining int    `json:"remaining"`
	Available int    `json:"available"`
}

func toTraineeDTO(trainee scheduler.Trainee) traineeDTO {
	return traineeDTO{
		ID:            trainee.ID,
		Name:          trainee.Name,
		Email:         trainee.Email,
		Color:         trainee.Color,
		GradientColor: scheduler.DarkenColor(trainee.Color, scheduler.GradientShift),
	}
}

func toTraineeDTOs(trainees []scheduler.Trainee) []traineeDTO {
	out := make([]traineeDTO, 0, len(trainees))
	for _, trainee := range trainees {
		out = append(out, toTraineeDTO(trainee))
	}
	return out
}
