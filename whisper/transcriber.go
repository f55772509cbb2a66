// Package whisper implements the transcription side of claij: WAV decoding,
// sample-rate validation and speech-to-text inference behind a pluggable
// engine.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ModelSampleRate is the input rate the model was trained on. Uploads at
// any other rate are rejected; no resampling is attempted.
const ModelSampleRate = 16000

var (
	// ErrSampleRate marks uploads whose sample rate does not match
	// ModelSampleRate.
	ErrSampleRate = errors.New("audio must be 16kHz")

	// ErrBadAudio marks uploads that could not be decoded at all.
	ErrBadAudio = errors.New("could not decode audio")

	// ErrInference marks failures of the engine itself.
	ErrInference = errors.New("inference failed")
)

// Transcriber owns the loaded engine and turns uploaded audio bytes into
// text. The engine is constructed once at startup and read-only thereafter.
type Transcriber struct {
	engine   Engine
	spoolDir string
}

func NewTranscriber(engine Engine, spoolDir string) *Transcriber {
	return &Transcriber{engine: engine, spoolDir: spoolDir}
}

// Transcribe spools the upload to disk, decodes it, validates its sample
// rate and runs inference. The spool path is unique per request, so
// concurrent requests cannot read each other's audio; the file is removed
// when the request ends. The filename is used only for logging.
func (t *Transcriber) Transcribe(ctx context.Context, data []byte, filename string) (string, error) {
	log.Printf("received audio file for transcription: %s (%d bytes)", filename, len(data))

	path := filepath.Join(t.spoolDir, uuid.NewString()+".wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("spooling upload: %w", err)
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading spooled upload: %w", err)
	}
	samples, sampleRate, err := DecodeWAV(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadAudio, err)
	}

	if sampleRate != ModelSampleRate {
		return "", fmt.Errorf("%w, got %d Hz", ErrSampleRate, sampleRate)
	}

	log.Printf("processing audio: %d samples at %d Hz", len(samples), sampleRate)

	text, err := t.engine.Transcribe(ctx, samples, sampleRate)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInference, err)
	}

	log.Printf("transcription result: %q", text)
	return text, nil
}
