package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/quizbank-backend/internal/domain"
	"github.com/heartmarshall/quizbank-backend/pkg/ctxutil"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error     string        `json:"error"`
	Code      string        `json:"code"`
	Fields    []FieldDetail `json:"fields,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	// Partial carries the work finished before an interruption.
	Partial any `json:"partial,omitempty"`
}

// FieldDetail names one invalid input field.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps a service error to a status code and writes it.
// Unexpected errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, resp := errorResponse(r, log, err)
	writeJSON(w, status, resp)
}

func errorResponse(r *http.Request, log *slog.Logger, err error) (int, ErrorResponse) {
	resp := ErrorResponse{RequestID: ctxutil.RequestIDFromCtx(r.Context())}
	status := http.StatusInternalServerError

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Code = "VALIDATION"
		resp.Error = "invalid input"
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, FieldDetail{Field: fe.Field, Message: fe.Message})
		}
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		resp.Code = "NOT_FOUND"
		resp.Error = "not found"
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
		resp.Code = "ALREADY_EXISTS"
		resp.Error = "already exists"
	case errors.Is(err, domain.ErrUnextractable):
		status = http.StatusUnprocessableEntity
		resp.Code = "UNEXTRACTABLE"
		resp.Error = "no question found in text"
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		status = http.StatusServiceUnavailable
		resp.Code = "UNAVAILABLE"
		resp.Error = "text generation unavailable, try again later"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
		resp.Code = "INTERRUPTED"
		resp.Error = "request interrupted before completion"
		log.WarnContext(r.Context(), "request interrupted",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	default:
		resp.Code = "INTERNAL"
		resp.Error = "internal server error"
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	return status, resp
}

func badRequest(field, message string) error {
	return domain.NewValidationError(field, message)
}

// decodeJSON reads a JSON body of at most maxBytes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return badRequest("body", "too large")
		}
		return badRequest("body", "invalid JSON: "+err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
