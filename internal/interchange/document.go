// Package interchange converts timetable records to and from the JSON
// document used for export and import.
package interchange

import (
	"time"

	"github.com/example/trainee-timetable/internal/scheduler"
)

// Collection keys of the interchange document.
const (
	KeyTrainees    = "trainees"
	KeySessions    = "sessions"
	KeyDayBookings = "dayBookings"
)

// Document is the exported file layout.
type Document struct {
	Trainees    []TraineeRecord    `json:"trainees"`
	Sessions    []SessionRecord    `json:"sessions"`
	DayBookings []DayBookingRecord `json:"dayBookings"`
	ExportedAt  time.Time          `json:"exportedAt"`
}

// TraineeRecord is a trainee as it appears in the document.
type TraineeRecord struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty"`
	Color string `json:"color" validate:"required,rgbcolor"`
}

// SessionRecord is a session as it appears in the document. Day is a pointer
// so that a missing day can be told apart from Monday.
type SessionRecord struct {
	ID        string `json:"id" validate:"required"`
	TraineeID string `json:"traineeId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Type      string `json:"type,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Day       *int   `json:"day" validate:"required,min=0,max=6"`
	Time      string `json:"time" validate:"required,timeslot"`
	Week      string `json:"week" validate:"required,weekkey"`
}

// DayBookingRecord is a day booking as it appears in the document.
type DayBookingRecord struct {
	ID        string `json:"id" validate:"required"`
	Date      string `json:"date" validate:"required,datekey"`
	TraineeID string `json:"traineeId" validate:"required"`
	Hours     int    `json:"hours" validate:"gt=0"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=planned present"`
}

// NewDocument builds the export document for records.
func NewDocument(records scheduler.Records, exportedAt time.Time) Document {
	doc := Document{
		Trainees:    make([]TraineeRecord, 0, len(records.Trainees)),
		Sessions:    make([]SessionRecord, 0, len(records.Sessions)),
		DayBookings: make([]DayBookingRecord, 0, len(records.DayBookings)),
		ExportedAt:  exportedAt.UTC(),
	}
	for _, t := range records.Trainees {
		doc.Trainees = append(doc.Trainees, TraineeRecord{ID: t.ID, Name: t.Name, Email: t.Email, Color: t.Color})
	}
	for _, s := range records.Sessions {
		day := s.Day
		doc.Sessions = append(doc.Sessions, SessionRecord{
			ID: s.ID, TraineeID: s.TraineeID, Title: s.Title, Type: s.Type, Notes: s.Notes,
			Day: &day, Time: s.Time, Week: s.Week,
		})
	}
	for _, b := range records.DayBookings {
		doc.DayBookings = append(doc.DayBookings, DayBookingRecord{
			ID: b.ID, Date: b.Date, TraineeID: b.TraineeID, Hours: b.Hours, Status: string(b.Status),
		})
	}
	return doc
}

func (r TraineeRecord) toTrainee() scheduler.Trainee {
	return scheduler.Trainee{ID: r.ID, Name: r.Name, Email: r.Email, Color: r.Color}
}

func (r SessionRecord) toSession() scheduler.Session {
	typ := r.Type
	if typ == "" {
		typ = scheduler.DefaultSessionType
	}
	return scheduler.Session{
		ID: r.ID, TraineeID: r.TraineeID, Title: r.Title, Type: typ, Notes: r.Notes,
		Week: r.Week, Day: *r.Day, Time: r.Time,
	}
}

func (r DayBookingRecord) toDayBooking() scheduler.DayBooking {
	status := scheduler.Status(r.Status)
	if status == "" {
		status = scheduler.StatusPlanned
	}
	return scheduler.DayBooking{ID: r.ID, Date: r.Date, TraineeID: r.TraineeID, Hours: r.Hours, Status: status}
}
