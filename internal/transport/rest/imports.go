package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/internal/service/importer"
)

type importService interface {
	Import(ctx context.Context, input importer.ImportInput) (*importer.ImportResult, error)
	Preview(ctx context.Context, input importer.ImportInput) (*importer.ImportResult, error)
}

// bodyOverhead covers JSON quoting and escaping around the raw text.
const bodyOverhead = 64 << 10

// ImportHandler serves question extraction from pasted material.
type ImportHandler struct {
	svc      importService
	maxBytes int64
	log      *slog.Logger
}

// NewImportHandler creates an ImportHandler. maxTextBytes bounds the text field;
// request bodies may be somewhat larger to allow for JSON escaping.
func NewImportHandler(log *slog.Logger, svc importService, maxTextBytes int) *ImportHandler {
	return &ImportHandler{
		svc:      svc,
		maxBytes: int64(maxTextBytes)*2 + bodyOverhead,
		log:      log.With("handler", "import"),
	}
}

type extractRequest struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	Format string `json:"format"`
}

func (req extractRequest) input() importer.ImportInput {
	return importer.ImportInput{
		Source: req.Source,
		Text:   req.Text,
		Format: domain.SourceFormat(req.Format),
	}
}

// Extract previews the questions in the posted text without storing them.
func (h *ImportHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(w, r, h.maxBytes, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	result, err := h.svc.Preview(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, result, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Import extracts and stores the questions in the posted text.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(w, r, h.maxBytes, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	result, err := h.svc.Import(r.Context(), req.input())
	if err != nil {
		h.fail(w, r, result, err)
		return
	}

	status := http.StatusCreated
	if result.Saved == 0 {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// fail writes err and, when the service stopped midway, the outcomes of
// the blocks it had already processed.
func (h *ImportHandler) fail(w http.ResponseWriter, r *http.Request, partial *importer.ImportResult, err error) {
	status, resp := errorResponse(r, h.log, err)
	if partial != nil {
		resp.Partial = partial
	}
	writeJSON(w, status, resp)
}
