package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/trainee-timetable/internal/scheduler"
)

type bookingService interface {
	BookingsOnDate(ctx context.Context, date string) ([]scheduler.DayBooking, error)
	CreateBooking(ctx context.Context, input scheduler.BookingInput) (scheduler.DayBooking, error)
	UpdateBooking(ctx context.Context, id string, input scheduler.BookingInput) (scheduler.DayBooking, error)
	DeleteBooking(ctx context.Context, id string) error
}

type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookings, err := h.service.BookingsOnDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: toBookingDTOs(bookings)})
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req bookingRequest
	if err := h.responder.decode(r, &req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{Booking: toBookingDTO(booking)})
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBooking)
		return
	}

	var req bookingRequest
	if err := h.responder.decode(r, &req); err != nil {
		h.log(r.Context(), "Update", "booking_id", bookingID, "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode booking update", "error", err)
		h.responder.handleRequestError(r.Context(), w, err)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), bookingID, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: toBookingDTO(booking)})
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBooking)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), bookingID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// bookingRequest is shared by create and update. Date is ignored on update.
type bookingRequest struct {
	TraineeID string `json:"trainee_id"`
	Date      string `json:"date"`
	Hours     int    `json:"hours"`
	Status    string `json:"status" validate:"omitempty,oneof=planned present"`
}

func (r bookingRequest) toInput() scheduler.BookingInput {
	return scheduler.BookingInput{
		TraineeID: r.TraineeID,
		Date:      r.Date,
		Hours:     r.Hours,
		Status:    scheduler.Status(strings.TrimSpace(r.Status)),
	}
}

type bookingResponse struct {
	Booking bookingDTO `json:"booking"`
}

type listBookingsResponse struct {
	Bookings []bookingDTO `json:"bookings"`
}

type bookingDTO struct {
	ID        string `json:"id"`
	TraineeID string `json:"trainee_id"`
	Date      string `json:"date"`
	Hours     int    `json:"hours"`
	Status    string `json:"status"`
}

func toBookingDTO(booking scheduler.DayBooking) bookingDTO {
	return bookingDTO{
		ID:        booking.ID,
		TraineeID: booking.TraineeID,
		Date:      booking.Date,
		Hours:     booking.Hours,
		Status:    string(booking.Status),
	}
}

func toBookingDTOs(bookings []scheduler.DayBooking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, toBookingDTO(booking))
	}
	return out
}
