package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/JulesGosnell/claij/whisper"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("could not marshal response body: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// errorStatus maps transcription failures to client-facing statuses:
// undecodable audio is the client's fault, a sample-rate mismatch is a
// validation failure, and anything else means the engine misbehaved.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, whisper.ErrSampleRate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, whisper.ErrBadAudio):
		return http.StatusBadRequest
	case errors.Is(err, whisper.ErrInference):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
