package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minhphat/retail-crm-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseRange reads the ?mode= and ?anchor= filter parameters. Mode defaults
// to "all"; the anchor is passed through untouched (an unparseable anchor
// matches nothing rather than erroring).
func parseRange(r *http.Request) (domain.RangeMode, string, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		raw = string(domain.ModeAll)
	}
	mode, err := domain.ParseRangeMode(raw)
	if err != nil {
		return "", "", err
	}
	return mode, r.URL.Query().Get("anchor"), nil
}

// confirmed reports whether the caller passed ?confirm=true on a destructive
// request.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var noSelection *domain.ErrNoCustomerSelected
	var needsConfirm *domain.ErrConfirmationRequired

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &noSelection):
		logger.Debug("no customer selected", zap.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &needsConfirm):
		logger.Debug("confirmation required", zap.String("error", err.Error()))
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
