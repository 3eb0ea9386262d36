package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/trainee-timetable/internal/application"
	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/scheduler"
)

type calendarService interface {
	Week(ctx context.Context, date string) (scheduler.WeekView, error)
	Month(ctx context.Context, month string) (scheduler.MonthView, error)
	Holidays(ctx context.Context) ([]application.HolidayEntry, error)
	TimeSlots() []application.TimeSlot
}

type CalendarHandler struct {
	service   calendarService
	responder responder
}

func NewCalendarHandler(service calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{service: service, responder: newResponder(logger)}
}

func (h *CalendarHandler) Week(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view, err := h.service.Week(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWeekViewDTO(view))
}

func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view, err := h.service.Month(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMonthViewDTO(view))
}

func (h *CalendarHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	entries, err := h.service.Holidays(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]holidayDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, holidayDTO{
			Date:        entry.Date,
			Name:        entry.Name,
			Short:       entry.Short,
			Description: entry.Description,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHolidaysResponse{Holidays: out})
}

func (h *CalendarHandler) TimeSlots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slots := h.service.TimeSlots()
	out := make([]timeSlotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, timeSlotDTO{Time: slot.Time, Label: slot.Label})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTimeSlotsResponse{Slots: out})
}

type listHolidaysResponse struct {
	Holidays []holidayDTO `json:"holidays"`
}

type listTimeSlotsResponse struct {
	Slots []timeSlotDTO `json:"slots"`
}

type holidayDTO struct {
	Date        string `json:"date,omitempty"`
	Name        string `json:"name"`
	Short       string `json:"short"`
	Description string `json:"description"`
}

type timeSlotDTO struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

type weekViewDTO struct {
	WeekStart string       `json:"week_start"`
	Week      int          `json:"week"`
	Days      []dayDTO     `json:"days"`
	Slots     []slotRowDTO `json:"slots"`
}

type dayDTO struct {
	Date     string      `json:"date"`
	Day      int         `json:"day"`
	Weekend  bool        `json:"weekend"`
	Today    bool        `json:"today"`
	Bookable bool        `json:"bookable"`
	Holiday  *holidayDTO `json:"holiday,omitempty"`
}

type slotRowDTO struct {
	Time  string              `json:"time"`
	Label string              `json:"label"`
	Cells [][]sessionEntryDTO `json:"cells"`
}

type sessionEntryDTO struct {
	sessionDTO
	TraineeName   string `json:"trainee_name"`
	Color         string `json:"color,omitempty"`
	GradientColor string `json:"gradient_color,omitempty"`
}

type monthViewDTO struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Weeks []monthWeekDTO `json:"weeks"`
}

type monthWeekDTO struct {
	Week int            `json:"week"`
	Days []*monthDayDTO `json:"days"`
}

type monthDayDTO struct {
	Date     string            `json:"date"`
	Day      int               `json:"day"`
	Weekend  bool              `json:"weekend"`
	Today    bool              `json:"today"`
	Past     bool              `json:"past"`
	Bookable bool              `json:"bookable"`
	Editable bool              `json:"editable"`
	Holiday  *holidayDTO       `json:"holiday,omitempty"`
	Bookings []bookingEntryDTO `json:"bookings"`
}

type bookingEntryDTO struct {
	bookingDTO
	TraineeName string `json:"trainee_name"`
	Color       string `json:"color,omitempty"`
}

func toHolidayDTO(h *calendar.Holiday) *holidayDTO {
	if h == nil {
		return nil
	}
	return &holidayDTO{Name: h.Name, Short: h.Short, Description: h.Description}
}

func toWeekViewDTO(view scheduler.WeekView) weekViewDTO {
	out := weekViewDTO{
		WeekStart: view.WeekStart,
		Week:      view.Week,
		Days:      make([]dayDTO, 0, len(view.Days)),
		Slots:     make([]slotRowDTO, 0, len(view.Slots)),
	}
	for _, day := range view.Days {
		out.Days = append(out.Days, dayDTO{
			Date:     day.Date,
			Day:      day.Day,
			Weekend:  day.Weekend,
			Today:    day.Today,
			Bookable: day.Bookable,
			Holiday:  toHolidayDTO(day.Holiday),
		})
	}
	for _, row := range view.Slots {
		dto := slotRowDTO{Time: row.Time, Label: row.Label, Cells: make([][]sessionEntryDTO, len(row.Cells))}
		for i, cell := range row.Cells {
			entries := make([]sessionEntryDTO, 0, len(cell))
			for _, entry := range cell {
				entries = append(entries, sessionEntryDTO{
					sessionDTO:    toSessionDTO(entry.Session),
					TraineeName:   entry.TraineeName,
					Color:         entry.Color,
					GradientColor: entry.GradientColor,
				})
			}
			dto.Cells[i] = entries
		}
		out.Slots = append(out.Slots, dto)
	}
	return out
}

func toMonthViewDTO(view scheduler.MonthView) monthViewDTO {
	out := monthViewDTO{Year: view.Year, Month: int(view.Month), Weeks: make([]monthWeekDTO, 0, len(view.Weeks))}
	for _, week := range view.Weeks {
		dto := monthWeekDTO{Week: week.Week, Days: make([]*monthDayDTO, len(week.Days))}
		for i, day := range week.Days {
			if day == nil {
				continue
			}
			bookings := make([]bookingEntryDTO, 0, len(day.Bookings))
			for _, entry := range day.Bookings {
				bookings = append(bookings, bookingEntryDTO{
					bookingDTO:  toBookingDTO(entry.DayBooking),
					TraineeName: entry.TraineeName,
					Color:       entry.Color,
				})
			}
			dto.Days[i] = &monthDayDTO{
				Date:     day.Date,
				Day:      day.Day,
				Weekend:  day.Weekend,
				Today:    day.Today,
				Past:     day.Past,
				Bookable: day.Bookable,
				Editable: day.Editable,
				Holiday:  toHolidayDTO(day.Holiday),
				Bookings: bookings,
			}
		}
		out.Weeks = append(out.Weeks, dto)
	}
	return out
}
