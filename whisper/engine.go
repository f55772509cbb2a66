package whisper

import (
	"context"
	"fmt"
)

// Engine runs speech-to-text inference on a decoded sample buffer.
// Implementations must be safe for use from one request at a time; the
// whispercpp and openai engines are additionally safe for concurrent calls.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)
	Close() error
}

// NewEngine constructs the engine named in the configuration. The whispercpp
// engine blocks until its model is loaded; an error here is fatal to the
// service, which cannot serve requests without a model.
func NewEngine(ctx context.Context, cfg Config, device string) (Engine, error) {
	switch cfg.Engine {
	case "whispercpp":
		return StartServerEngine(ctx, cfg, device)
	case "openai":
		return NewOpenAIEngine(cfg.OpenAIKey, cfg.Model), nil
	case "mock":
		return &MockEngine{}, nil
	default:
		return nil, fmt.Errorf("unknown engine: %q", cfg.Engine)
	}
}
