package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps a service error to an HTTP status. Internal causes
// are logged but never echoed to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		logger.Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch derr.Kind {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, derr.Message)
	case domain.KindPolicyViolation:
		writeError(w, http.StatusConflict, derr.Message)
	case domain.KindIntegrityViolation:
		writeError(w, http.StatusConflict, derr.Message)
	case domain.KindUnauthorized:
		writeError(w, http.StatusUnauthorized, derr.Message)
	default:
		logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
