package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/trainee-timetable/internal/interchange"
	"github.com/example/trainee-timetable/internal/scheduler"
)

// TransferService exports and imports the whole timetable as a JSON document.
type TransferService struct {
	workspace *Workspace
	decoder   *interchange.Decoder
	logger    *slog.Logger
}

// NewTransferService constructs a transfer service over the workspace.
func NewTransferService(workspace *Workspace, decoder *interchange.Decoder) *TransferService {
	return NewTransferServiceWithLogger(workspace, decoder, nil)
}

// NewTransferServiceWithLogger constructs a transfer service with a specified logger.
func NewTransferServiceWithLogger(workspace *Workspace, decoder *interchange.Decoder, logger *slog.Logger) *TransferService {
	if decoder == nil {
		decoder = interchange.NewDecoder(nil)
	}
	return &TransferService{workspace: workspace, decoder: decoder, logger: defaultLogger(logger)}
}

func (s *TransferService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TransferService", operation, attrs...)
}

// ExportFileName returns the download name for an export taken now.
func (s *TransferService) ExportFileName() string {
	return interchange.FileName(s.workspace.Now())
}

// Export writes the current records to w.
func (s *TransferService) Export(ctx context.Context, w io.Writer) (err error) {
	if s == nil || s.workspace == nil {
		return fmt.Errorf("TransferService is not configured")
	}

	var records scheduler.Records
	s.workspace.read(func(t *scheduler.Timetable) {
		records = t.Records()
	})

	logger := s.loggerWith(ctx, "Export")
	if err = interchange.Export(w, records, s.workspace.Now()); err != nil {
		logger.ErrorContext(ctx, "failed to export timetable", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "timetable exported",
		"trainees", len(records.Trainees),
		"sessions", len(records.Sessions),
		"day_bookings", len(records.DayBookings),
	)
	return nil
}

// Import decodes a document from r and replaces the collections it contains.
// Decoding and validation happen before the workspace is locked; trainee
// references are checked against the merged result under the lock. An
// invalid document changes nothing and returns a *MalformedImportError.
func (s *TransferService) Import(ctx context.Context, r io.Reader) (counts map[string]int, err error) {
	if s == nil || s.workspace == nil {
		return nil, fmt.Errorf("TransferService is not configured")
	}

	logger := s.loggerWith(ctx, "Import")
	defer func() {
		var malformed *MalformedImportError
		s.workspace.metrics.RecordImport(err == nil)
		if errors.As(err, &malformed) {
			logger.WarnContext(ctx, "import rejected", "issues", len(malformed.Issues), "error_kind", ErrorKind(err))
			return
		}
		logOutcome(ctx, logger, err, "failed to import timetable", "timetable imported", "counts", counts)
	}()

	imported, err := s.decoder.Decode(r)
	if err != nil {
		return nil, err
	}

	err = s.workspace.mutate(ctx, logger, "timetable", "import", func(t *scheduler.Timetable) (bool, error) {
		next, applyErr := imported.Apply(t.Records())
		if applyErr != nil {
			return false, applyErr
		}
		t.Replace(next)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return imported.Counts(), nil
}
