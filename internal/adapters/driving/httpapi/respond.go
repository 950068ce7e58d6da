package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCorpus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMissingCredential),
		errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrTranscriptionUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMalformedResponse),
		errors.Is(err, domain.ErrInvalidDeckSpec),
		errors.Is(err, domain.ErrSlideCountMismatch),
		errors.Is(err, domain.ErrRenderFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(domain.ErrInvalidInput, err)
	}
	return nil
}

func writeArtifact(w http.ResponseWriter, a *domain.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		logger.Warn("writing %s: %v", a.FileName, err)
	}
}
