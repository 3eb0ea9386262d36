package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/trainee-timetable/internal/application"
	"github.com/example/trainee-timetable/internal/interchange"
)

// maxRequestBody bounds JSON request bodies other than imports.
const maxRequestBody = 1 << 20

var (
	errBadRequestBody = errors.New("request body must be a valid JSON object")
	errInvalidTrainee = errors.New("invalid trainee id")
	errInvalidSession = errors.New("invalid session id")
	errInvalidBooking = errors.New("invalid booking id")
	errMissingImport  = errors.New("import document is required")
)

type responder struct {
	logger   *slog.Logger
	validate *validator.Validate
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	validate := validator.New()
	interchange.RegisterValidations(validate)
	return responder{logger: logger, validate: validate}
}

// decode reads a JSON request body into dst and checks its validate tags.
// Malformed JSON yields errBadRequestBody; tag failures yield a
// *application.ValidationError keyed by JSON field name.
func (r responder) decode(req *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}

	err := r.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	vErr := &application.ValidationError{}
	for _, fe := range fieldErrs {
		vErr.Add(fe.Field(), requestFieldMessage(fe))
	}
	return vErr
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).WarnContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleRequestError responds to a failure of decode.
func (r responder) handleRequestError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, errBadRequestBody) {
		r.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	r.handleServiceError(ctx, w, err)
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	if errors.Is(err, application.ErrNotFound) {
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{
			ErrorCode: "NOT_FOUND",
			Message:   "the requested record does not exist",
		})
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "VALIDATION_FAILED",
			Message:   "the request contains invalid fields",
			Errors:    vErr.FieldErrors,
		})
		return
	}

	var capErr *application.WeeklyCapExceededError
	if errors.As(err, &capErr) {
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "WEEKLY_CAP_EXCEEDED",
			Message:   capErr.Error(),
			Details: &capDetails{
				WeekStart: capErr.WeekStart,
				Attempted: capErr.Attempted,
				Current:   capErr.Current,
				Cap:       capErr.Cap,
				Available: capErr.Available(),
			},
		})
		return
	}

	var importErr *application.MalformedImportError
	if errors.As(err, &importErr) {
		issues := make([]string, 0, len(importErr.Issues))
		for _, issue := range importErr.Issues {
			issues = append(issues, issue.String())
		}
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			ErrorCode: "MALFORMED_IMPORT",
			Message:   "the import document was rejected",
			Issues:    issues,
		})
		return
	}

	r.loggerFor(ctx).ErrorContext(ctx, "unexpected service error", "error", err, "error_kind", application.ErrorKind(err))
	r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: statusMessage(http.StatusInternalServerError)})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "the request is invalid"
	case http.StatusNotFound:
		return "the requested record does not exist"
	case http.StatusConflict:
		return "the request conflicts with the current timetable"
	case http.StatusUnprocessableEntity:
		return "the request contains invalid fields"
	case http.StatusServiceUnavailable:
		return "the service is not ready"
	default:
		return "an internal error occurred"
	}
}

func requestFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max":
		return fe.Field() + " must be between 0 and 6"
	case "email":
		return "email is invalid"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "weekkey":
		return fe.Field() + " must be the date key of a Monday"
	case "timeslot":
		return fe.Field() + " must be a time slot between 08:00 and 17:00"
	default:
		return fe.Field() + " is invalid"
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Issues    []string          `json:"issues,omitempty"`
	Details   *capDetails       `json:"details,omitempty"`
}

type capDetails struct {
	WeekStart string `json:"week_start"`
	Attempted int    `json:"attempted"`
	Current   int    `json:"current"`
	Cap       int    `json:"cap"`
	Available int    `json:"available"`
}
