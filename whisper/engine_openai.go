package whisper

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEngine transcribes through an OpenAI-compatible transcription API
// instead of a local model. Useful when no GPU (or ggml model file) is
// available to the process.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

func NewOpenAIEngine(apiKey, model string) *OpenAIEngine {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIEngine{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (e *OpenAIEngine) Name() string { return "openai" }

func (e *OpenAIEngine) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	wavData := EncodeWAV(samples, sampleRate)

	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    e.model,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(wavData),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}

func (e *OpenAIEngine) Close() error { return nil }
