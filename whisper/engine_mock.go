package whisper

import "context"

// MockEngine is a canned engine for tests and local development.
// It records what reached inference so tests can assert on it.
type MockEngine struct {
	Reply string
	// ReplyFn, when set, takes precedence over Reply.
	ReplyFn func(samples []float32, sampleRate int) string
	Err     error

	Calls    int
	LastLen  int
	LastRate int
}

func (e *MockEngine) Name() string { return "mock" }

func (e *MockEngine) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	e.Calls++
	e.LastLen = len(samples)
	e.LastRate = sampleRate
	if e.Err != nil {
		return "", e.Err
	}
	if e.ReplyFn != nil {
		return e.ReplyFn(samples, sampleRate), nil
	}
	return e.Reply, nil
}

func (e *MockEngine) Close() error { return nil }
