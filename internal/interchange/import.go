package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// MaxImportSize bounds the number of bytes read from an import document.
const MaxImportSize = 16 << 20

// Import holds the collections present in an import document. A collection
// whose Has flag is false was absent and must be left untouched.
type Import struct {
	Trainees       []scheduler.Trainee
	Sessions       []scheduler.Session
	DayBookings    []scheduler.DayBooking
	HasTrainees    bool
	HasSessions    bool
	HasDayBookings bool
}

// Apply returns current with the present collections replaced. A result in
// which a session or booking names a trainee missing from the roster is
// rejected with a *MalformedImportError and current is left as it was.
func (i Import) Apply(current scheduler.Records) (scheduler.Records, error) {
	next := current.Clone()
	if i.HasTrainees {
		next.Trainees = append([]scheduler.Trainee(nil), i.Trainees...)
	}
	if i.HasSessions {
		next.Sessions = append([]scheduler.Session(nil), i.Sessions...)
	}
	if i.HasDayBookings {
		next.DayBookings = append([]scheduler.DayBooking(nil), i.DayBookings...)
	}

	roster := make(map[string]struct{}, len(next.Trainees))
	for _, tr := range next.Trainees {
		roster[tr.ID] = struct{}{}
	}
	var issues []Issue
	for idx, sess := range next.Sessions {
		if _, ok := roster[sess.TraineeID]; !ok {
			issues = append(issues, danglingTrainee(KeySessions, idx, sess.TraineeID, i.HasSessions))
		}
	}
	for idx, b := range next.DayBookings {
		if _, ok := roster[b.TraineeID]; !ok {
			issues = append(issues, danglingTrainee(KeyDayBookings, idx, b.TraineeID, i.HasDayBookings))
		}
	}
	if len(issues) > 0 {
		return current, &MalformedImportError{Issues: issues}
	}
	return next, nil
}

func danglingTrainee(collection string, index int, traineeID string, imported bool) Issue {
	msg := fmt.Sprintf("trainee %q is not in the roster", traineeID)
	if !imported {
		msg = fmt.Sprintf("existing record refers to trainee %q, which the imported roster drops", traineeID)
	}
	return Issue{Collection: collection, Index: index, Field: "traineeId", Message: msg}
}

// Counts returns the number of records per present collection.
func (i Import) Counts() map[string]int {
	counts := make(map[string]int, 3)
	if i.HasTrainees {
		counts[KeyTrainees] = len(i.Trainees)
	}
	if i.HasSessions {
		counts[KeySessions] = len(i.Sessions)
	}
	if i.HasDayBookings {
		counts[KeyDayBookings] = len(i.DayBookings)
	}
	return counts
}

// Decoder validates and decodes import documents.
type Decoder struct {
	validate *validator.Validate
}

// NewDecoder returns a decoder with the timetable field validations
// registered on validate. A nil validate gets a fresh instance.
func NewDecoder(validate *validator.Validate) *Decoder {
	if validate == nil {
		validate = validator.New()
	}
	RegisterValidations(validate)
	return &Decoder{validate: validate}
}

// RegisterValidations adds the datekey, weekkey, timeslot and rgbcolor tags.
func RegisterValidations(validate *validator.Validate) {
	validate.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return calendar.ValidKey(fl.Field().String())
	})
	validate.RegisterValidation("weekkey", func(fl validator.FieldLevel) bool {
		return calendar.IsWeekKey(fl.Field().String())
	})
	validate.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return calendar.IsTimeSlot(fl.Field().String())
	})
	validate.RegisterValidation("rgbcolor", func(fl validator.FieldLevel) bool {
		return scheduler.ValidColor(fl.Field().String())
	})
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Decode reads an import document from r. The input may be UTF-8 with or
// without a byte order mark, or UTF-16 with one. Any invalid record rejects
// the whole document with a *MalformedImportError.
func (d *Decoder) Decode(r io.Reader) (Import, error) {
	decoded := transform.NewReader(io.LimitReader(r, MaxImportSize), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	raw, err := io.ReadAll(decoded)
	if err != nil {
		return Import{}, fmt.Errorf("interchange: read import: %w", err)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil || root == nil {
		return Import{}, &MalformedImportError{Issues: []Issue{{Index: -1, Message: "document must be a JSON object"}}}
	}

	var (
		out    Import
		issues []Issue
	)
	if items, ok := arrayField(root, KeyTrainees); ok {
		out.HasTrainees = true
		out.Trainees, issues = decodeCollection(d, KeyTrainees, items, issues,
			func(rec TraineeRecord) (string, scheduler.Trainee) { return rec.ID, rec.toTrainee() })
	}
	if items, ok := arrayField(root, KeySessions); ok {
		out.HasSessions = true
		out.Sessions, issues = decodeCollection(d, KeySessions, items, issues,
			func(rec SessionRecord) (string, scheduler.Session) { return rec.ID, rec.toSession() })
	}
	if items, ok := arrayField(root, KeyDayBookings); ok {
		out.HasDayBookings = true
		out.DayBookings, issues = decodeCollection(d, KeyDayBookings, items, issues,
			func(rec DayBookingRecord) (string, scheduler.DayBooking) { return rec.ID, rec.toDayBooking() })
	}

	if len(issues) > 0 {
		return Import{}, &MalformedImportError{Issues: issues}
	}
	return out, nil
}

// arrayField returns the elements of root[key] when it is a JSON array.
// Absent keys and values of any other type are skipped.
func arrayField(root map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	raw, ok := root[key]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

func decodeCollection[R any, T any](d *Decoder, collection string, items []json.RawMessage, issues []Issue, convert func(R) (string, T)) ([]T, []Issue) {
	out := make([]T, 0, len(items))
	seen := make(map[string]int, len(items))
	for i, item := range items {
		var rec R
		if err := json.Unmarshal(item, &rec); err != nil {
			issues = append(issues, Issue{Collection: collection, Index: i, Message: decodeMessage(err)})
			continue
		}
		if err := d.validate.Struct(rec); err != nil {
			issues = append(issues, validationIssues(collection, i, err)...)
			continue
		}
		id, value := convert(rec)
		if first, dup := seen[id]; dup {
			issues = append(issues, Issue{
				Collection: collection, Index: i, Field: "id",
				Message: fmt.Sprintf("duplicate id %q (first at index %d)", id, first),
			})
			continue
		}
		seen[id] = i
		out = append(out, value)
	}
	return out, issues
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("field %s must be %s", typeErr.Field, typeErr.Type.String())
		}
		return "record must be a JSON object"
	}
	return "invalid JSON: " + err.Error()
}

func validationIssues(collection string, index int, err error) []Issue {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Collection: collection, Index: index, Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Collection: collection,
			Index:      index,
			Field:      fe.Field(),
			Message:    fieldMessage(fe),
		})
	}
	return issues
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min", "max":
		return "must be between 0 and 6"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datekey":
		return "must be a YYYY-MM-DD date"
	case "weekkey":
		return "must be the YYYY-MM-DD date of a Monday"
	case "timeslot":
		return "must be a time slot between 08:00 and 17:00"
	case "rgbcolor":
		return "must be a #rrggbb colour"
	default:
		return "is invalid"
	}
}
