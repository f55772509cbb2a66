// Package server exposes a Transcriber over HTTP.
package server

import (
	"io"
	"net/http"

	"github.com/JulesGosnell/claij/whisper"
)

type TranscriptionResponse struct {
	Text string `json:"text"`
}

type HealthResponse struct {
	OK     bool   `json:"ok"`
	Engine string `json:"engine"`
	Model  string `json:"model"`
	Device string `json:"device"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Health describes the loaded model for the health endpoint.
type Health struct {
	Engine string
	Model  string
	Device string
}

func NewTranscriptionMux(t *whisper.Transcriber, health Health) *http.ServeMux {

	if t == nil {
		panic("The Transcriber cannot be a null pointer")
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /transcribe", postTranscribe(t))
	mux.HandleFunc("GET /health", getHealth(health))

	return mux
}

func postTranscribe(t *whisper.Transcriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("audio")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing or malformed `audio` upload field")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read upload: "+err.Error())
			return
		}

		text, err := t.Transcribe(r.Context(), data, header.Filename)
		if err != nil {
			writeError(w, errorStatus(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, TranscriptionResponse{Text: text})
	}
}

func getHealth(health Health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			OK:     true,
			Engine: health.Engine,
			Model:  health.Model,
			Device: health.Device,
		})
	}
}
