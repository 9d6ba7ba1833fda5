package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/telliott/graph-community-service/pkg/models"
)

// writeSuccess writes a successful JSON response envelope
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError writes an error JSON response envelope
func writeError(w http.ResponseWriter, status int, message string, err error) {
	response := models.APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Int("status_code", status).Msg("Failed to encode JSON response")
	}
}
