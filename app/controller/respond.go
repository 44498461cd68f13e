package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"sistema-fardamentos/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// respondJSON writes v as a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Error encoding response")
	}
}

// respondError maps typed domain errors to HTTP statuses. Validation errors
// are 400, missing entities 404, business conflicts 409, everything else an
// opaque 500.
func respondError(w http.ResponseWriter, op string, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var stockErr *models.InsufficientStockError
	var completedErr *models.AlreadyCompletedError
	var integrityErr *models.ReferentialIntegrityError

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Error()
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		message = notFoundErr.Error()
	case errors.As(err, &stockErr):
		status = http.StatusConflict
		message = stockErr.Error()
	case errors.As(err, &completedErr):
		status = http.StatusConflict
		message = completedErr.Error()
	case errors.As(err, &integrityErr):
		status = http.StatusConflict
		message = integrityErr.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msgf("❌ %s failed", op)
	} else {
		logger.Warn().Msgf("❌ %s rejected: %s", op, message)
	}

	respondJSON(w, status, map[string]string{"error": message})
}

// pathID extracts a positive numeric ID from the request path after prefix
func pathID(r *http.Request, prefix string) (int64, error) {
	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("invalid id %q", raw)
	}
	return id, nil
}
