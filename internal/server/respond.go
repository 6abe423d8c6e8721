package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/moodlens/moodlens/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[Server] Failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError maps domain sentinels onto the structured error envelope. Every
// fallible boundary wraps one of the models sentinels, so nothing here needs
// a catch-all beyond the final INTERNAL case.
func writeError(w http.ResponseWriter, err error) {
	code := "INTERNAL"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		code, status = "INVALID_INPUT", http.StatusBadRequest
	case errors.Is(err, models.ErrCollaboratorUnavailable):
		code, status = "UNAVAILABLE_COLLABORATOR", http.StatusServiceUnavailable
	case errors.Is(err, models.ErrTranscriptionFailed):
		code, status = "TRANSCRIPTION_FAILED", http.StatusBadRequest
	case errors.Is(err, models.ErrTranscriptionService):
		code, status = "TRANSCRIPTION_SERVICE_ERROR", http.StatusBadGateway
	case errors.Is(err, models.ErrFaceAnalysisFailed):
		code, status = "FACE_ANALYSIS_FAILED", http.StatusBadGateway
	case errors.Is(err, models.ErrStorage):
		code, status = "STORAGE_ERROR", http.StatusInternalServerError
	}

	if status >= 500 {
		slog.Error("[Server] Request failed",
			slog.String("code", code),
			slog.String("error", err.Error()))
	}

	writeJSON(w, status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}
