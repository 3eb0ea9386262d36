package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/example/trainee-timetable/internal/interchange"
)

type transferService interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (map[string]int, error)
	ExportFileName() string
}

type TransferHandler struct {
	service   transferService
	responder responder
	logger    *slog.Logger
}

func NewTransferHandler(service transferService, logger *slog.Logger) *TransferHandler {
	base := defaultLogger(logger)
	return &TransferHandler{service: service, responder: newResponder(base), logger: base}
}

// Export streams the timetable as a JSON attachment.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": h.service.ExportFileName(),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		handlerLogger(r.Context(), h.logger, "TransferHandler", "Export").ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}

// Import accepts either a raw JSON body or a multipart form with a "file" part.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, closeBody, err := importBody(r)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "TransferHandler", "Import", "error_kind", "bad_request").WarnContext(r.Context(), "failed to read import upload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingImport)
		return
	}
	defer closeBody()

	counts, err := h.service.Import(r.Context(), body)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, importResponse{Imported: counts})
}

func importBody(r *http.Request) (io.Reader, func(), error) {
	noop := func() {}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		if r.Body == nil || r.Body == http.NoBody {
			return nil, noop, errors.New("empty body")
		}
		return io.LimitReader(r.Body, interchange.MaxImportSize), noop, nil
	}

	if err := r.ParseMultipartForm(interchange.MaxImportSize); err != nil {
		return nil, noop, fmt.Errorf("parse multipart form: %w", err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, noop, fmt.Errorf("read file part: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

type importResponse struct {
	Imported map[string]int `json:"imported"`
}
