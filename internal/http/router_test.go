package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trainee-timetable/internal/persistence/memory"
	"github.com/example/trainee-timetable/internal/testfixtures"
)

type apiHarness struct {
	handler  http.Handler
	services testfixtures.Services
	store    *memory.Store
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	services := testfixtures.NewServiceFactory(testfixtures.WithLogger(logger)).NewServices(store)
	handler := NewRouter(RouterConfig{
		Trainees: NewTraineeHandler(services.Trainees, logger),
		Sessions: NewSessionHandler(services.Sessions, logger),
		Bookings: NewBookingHandler(services.Bookings, logger),
		Calendar: NewCalendarHandler(services.Calendar, logger),
		Transfer: NewTransferHandler(services.Transfer, logger),
		Metrics:  services.Metrics.Handler(),
		Middleware: []func(http.Handler) http.Handler{
			RequestLogger(logger),
			Instrument(services.Metrics),
		},
	})
	return &apiHarness{handler: handler, services: services, store: store}
}

func (h *apiHarness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (h *apiHarness) createTrainee(t *testing.T, name string) traineeDTO {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/trainees", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[traineeResponse](t, rec).Trainee
}

func TestTraineeEndpoints(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)

	ana := h.createTrainee(t, "Ana")
	assert.Equal(t, "id-1", ana.ID)
	assert.Equal(t, "#4a90d9", ana.Color)
	assert.Equal(t, "#367cc5", ana.GradientColor)

	rec := h.do(t, http.MethodPut, "/trainees/"+ana.ID, `{"name":"Ana B","email":"ana@example.com","color":"#112233"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[traineeResponse](t, rec).Trainee
	assert.Equal(t, "Ana B", updated.Name)
	assert.Equal(t, "#112233", updated.Color)

	rec = h.do(t, http.MethodPut, "/trainees/"+ana.ID, `{"name":"Ana","email":"not-an-email"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Errors, "email")

	rec = h.do(t, http.MethodPut, "/trainees/ghost", `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodGet, "/trainees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[listTraineesResponse](t, rec).Trainees, 1)

	rec = h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"2026-03-12","hours":4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodDelete, "/trainees/"+ana.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, deleteTraineeResponse{SessionsRemoved: 0, BookingsRemoved: 1}, decodeBody[deleteTraineeResponse](t, rec))

	rec = h.do(t, http.MethodDelete, "/trainees/"+ana.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodPatch, "/trainees", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestWeeklyStatsEndpoint(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	ana := h.createTrainee(t, "Ana")

	rec := h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"2026-03-10","hours":8,"status":"present"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	booking := decodeBody[bookingResponse](t, rec).Booking

	rec = h.do(t, http.MethodGet, "/trainees/"+ana.ID+"/weekly-stats?date=2026-03-13", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decodeBody[weeklyStatsDTO](t, rec)
	assert.Equal(t, weeklyStatsDTO{
		TraineeID: ana.ID, WeekStart: "2026-03-09", Present: 8, Total: 8, Cap: 20, Remaining: 12, Available: 12,
	}, stats)

	rec = h.do(t, http.MethodGet, "/trainees/"+ana.ID+"/weekly-stats?exclude="+booking.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, decodeBody[weeklyStatsDTO](t, rec).Available)

	rec = h.do(t, http.MethodGet, "/trainees/ghost/weekly-stats", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodGet, "/trainees/"+ana.ID+"/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingEndpoints(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	ana := h.createTrainee(t, "Ana")

	for _, date := range []string{"2026-03-09", "2026-03-10"} {
		rec := h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"`+date+`","hours":8}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"2026-03-11","hours":5}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "WEEKLY_CAP_EXCEEDED", body.ErrorCode)
	require.NotNil(t, body.Details)
	assert.Equal(t, capDetails{WeekStart: "2026-03-09", Attempted: 5, Current: 16, Cap: 20, Available: 4}, *body.Details)

	rec = h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"2026-03-13","hours":4,"status":"present"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	future := decodeBody[bookingResponse](t, rec).Booking
	assert.Equal(t, "planned", future.Status)

	rec = h.do(t, http.MethodPut, "/bookings/"+future.ID, `{"trainee_id":"`+ana.ID+`","date":"2026-04-01","hours":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2026-03-13", decodeBody[bookingResponse](t, rec).Booking.Date)

	rec = h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"2026-05-25","hours":2}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "date is not bookable", decodeBody[errorResponse](t, rec).Errors["date"])

	rec = h.do(t, http.MethodPost, "/bookings", `{"trainee_id":"`+ana.ID+`","date":"2026-03-12","hours":2,"status":"absent"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Errors, "status")

	rec = h.do(t, http.MethodPost, "/bookings", `{"trainee_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPut, "/bookings/ghost", `{"trainee_id":"`+ana.ID+`","hours":2}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodGet, "/bookings?date=2026-03-13", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[listBookingsResponse](t, rec).Bookings, 1)

	rec = h.do(t, http.MethodDelete, "/bookings/"+future.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionEndpoints(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	ana := h.createTrainee(t, "Ana")

	rec := h.do(t, http.MethodPost, "/sessions", `{"trainee_id":"`+ana.ID+`","title":"Safety","week":"2026-03-09","time":"09:00"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "day is required", decodeBody[errorResponse](t, rec).Errors["day"])

	rec = h.do(t, http.MethodPost, "/sessions", `{"trainee_id":"`+ana.ID+`","title":"Safety","week":"2026-03-09","day":0,"time":"09:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := decodeBody[sessionResponse](t, rec).Session
	assert.Equal(t, "training", session.Type)

	rec = h.do(t, http.MethodGet, "/sessions?week=2026-03-09&day=0&time=09:00", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[listSessionsResponse](t, rec).Sessions, 1)

	rec = h.do(t, http.MethodPut, "/sessions/"+session.ID, `{"trainee_id":"`+ana.ID+`","title":"Exam","type":"exam"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Exam", decodeBody[sessionResponse](t, rec).Session.Title)

	rec = h.do(t, http.MethodGet, "/calendar/week?date=2026-03-09", "")
	require.Equal(t, http.StatusOK, rec.Code)
	week := decodeBody[weekViewDTO](t, rec)
	require.Len(t, week.Days, 7)
	require.Len(t, week.Slots, 10)
	cell := week.Slots[1].Cells[0]
	require.Len(t, cell, 1)
	assert.Equal(t, "Ana", cell[0].TraineeName)
	assert.Equal(t, "Exam", cell[0].Title)

	rec = h.do(t, http.MethodDelete, "/sessions/"+session.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCalendarEndpoints(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)

	rec := h.do(t, http.MethodGet, "/calendar/month?month=2026-05", "")
	require.Equal(t, http.StatusOK, rec.Code)
	month := decodeBody[monthViewDTO](t, rec)
	assert.Equal(t, 5, month.Month)
	var observed *monthDayDTO
	for _, week := range month.Weeks {
		for _, day := range week.Days {
			if day != nil && day.Date == "2026-05-25" {
				observed = day
			}
		}
	}
	require.NotNil(t, observed)
	assert.False(t, observed.Bookable)
	require.NotNil(t, observed.Holiday)
	assert.Equal(t, "ED+", observed.Holiday.Short)

	rec = h.do(t, http.MethodGet, "/calendar/month?month=May", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = h.do(t, http.MethodGet, "/holidays", "")
	require.Equal(t, http.StatusOK, rec.Code)
	holidays := decodeBody[listHolidaysResponse](t, rec).Holidays
	require.NotEmpty(t, holidays)
	assert.Equal(t, "2026-01-01", holidays[0].Date)

	rec = h.do(t, http.MethodGet, "/calendar/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	slots := decodeBody[listTimeSlotsResponse](t, rec).Slots
	require.Len(t, slots, 10)
	assert.Equal(t, timeSlotDTO{Time: "17:00", Label: "5:00 PM"}, slots[9])

	rec = h.do(t, http.MethodPost, "/holidays", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTransferEndpoints(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)
	ana := h.createTrainee(t, "Ana")

	rec := h.do(t, http.MethodGet, "/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename=trainee-timetable-2026-03-11.json`, rec.Header().Get("Content-Disposition"))
	exported := rec.Body.Bytes()
	assert.Contains(t, string(exported), `"trainees": [`)

	target := newAPIHarness(t)
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = part.Write(exported)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	upload := httptest.NewRecorder()
	target.handler.ServeHTTP(upload, req)
	require.Equal(t, http.StatusOK, upload.Code, upload.Body.String())
	assert.Equal(t, map[string]int{"trainees": 1, "sessions": 0, "dayBookings": 0}, decodeBody[importResponse](t, upload).Imported)

	rec = target.do(t, http.MethodGet, "/trainees", "")
	trainees := decodeBody[listTraineesResponse](t, rec).Trainees
	require.Len(t, trainees, 1)
	assert.Equal(t, ana, trainees[0])

	rec = h.do(t, http.MethodPost, "/import", `{"dayBookings":[{"id":"b1","date":"2026-03-12","traineeId":"x","hours":0}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "MALFORMED_IMPORT", body.ErrorCode)
	assert.Equal(t, []string{"dayBookings[0].hours: must be greater than 0"}, body.Issues)

	rec = h.do(t, http.MethodPost, "/import", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()
	h := newAPIHarness(t)

	rec := h.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	h.createTrainee(t, "Ana")
	h.do(t, http.MethodGet, "/trainees/id-1/weekly-stats", "")

	rec = h.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	metrics := rec.Body.String()
	assert.Contains(t, metrics, `timetable_http_requests_total{method="POST",route="/trainees",status="201"} 1`)
	assert.Contains(t, metrics, `route="/trainees/{id}/weekly-stats"`)
	assert.Contains(t, metrics, `timetable_mutations_total{entity="trainee",operation="create"} 1`)
}
