package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aliskhannn/python-tutor-bot/internal/domain/entities"
	"github.com/aliskhannn/python-tutor-bot/internal/service"
)

const (
	msgTutorUnavailable = "The tutor is unavailable right now. Please try again later."
	msgInternalError    = "Something went wrong. Please try again later."
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads the JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid field " + verrs[0].Field() + ": " + verrs[0].Tag()})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}

	return true
}

// writeError maps service errors to status codes. Unknown errors are logged
// and reported without details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	msg := err.Error()

	switch {
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		status = http.StatusUnprocessableEntity
		msg = "No questions available for this selection. Please choose different topics."
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
		msg = "No active quiz. Start a new one."
	case errors.Is(err, entities.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrExternalService):
		status = http.StatusBadGateway
		msg = msgTutorUnavailable
	case errors.Is(err, service.ErrUnknownConcept), errors.Is(err, service.ErrEmptyInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInputTooLarge):
		status = http.StatusRequestEntityTooLarge
	default:
		status = http.StatusInternalServerError
		msg = msgInternalError
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	writeJSON(w, status, errorResponse{Error: msg})
}
