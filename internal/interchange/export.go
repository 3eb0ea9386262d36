package interchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/example/trainee-timetable/internal/calendar"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// Export writes records as an indented JSON document stamped with exportedAt.
func Export(w io.Writer, records scheduler.Records, exportedAt time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(records, exportedAt)); err != nil {
		return fmt.Errorf("interchange: encode export: %w", err)
	}
	return nil
}

// FileName returns the download name for an export taken at t.
func FileName(t time.Time) string {
	return "trainee-timetable-" + calendar.Key(t.UTC()) + ".json"
}
