package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JulesGosnell/claij/internal/testutil"
	"github.com/JulesGosnell/claij/whisper"
)

func newTranscribeRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("building upload: %s", err)
	}
	part.Write(data)
	w.Close()

	r := httptest.NewRequest("POST", "/transcribe", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func newMux(t *testing.T, engine whisper.Engine) *http.ServeMux {
	transcriber := whisper.NewTranscriber(engine, t.TempDir())
	return NewTranscriptionMux(transcriber, Health{Engine: engine.Name(), Model: "test", Device: "cpu"})
}

func TestTranscribeSilence(t *testing.T) {
	mux := newMux(t, &whisper.MockEngine{Reply: ""})

	r := newTranscribeRequest(t, "audio", "silence.wav", testutil.SilenceWAV(16000, time.Second))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	res := w.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK; got %v", res.Status)
	}

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode response: %s", err)
	}
	if _, ok := body["text"].(string); !ok {
		t.Errorf("expected a string `text` field but got %v", body)
	}
}

func TestTranscribeWrongSampleRate(t *testing.T) {
	engine := &whisper.MockEngine{Reply: "should never be returned"}
	mux := newMux(t, engine)

	r := newTranscribeRequest(t, "audio", "cd-quality.wav", testutil.ToneWAV(44100, 440, time.Second))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	res := w.Result()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422; got %v", res.Status)
	}
	if engine.Calls != 0 {
		t.Errorf("engine should not have been called, saw %d call(s)", engine.Calls)
	}

	var body ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode error body: %s", err)
	}
	if body.Error == "" {
		t.Error("expected a descriptive error message")
	}
}

func TestTranscribeMissingUploadField(t *testing.T) {
	mux := newMux(t, &whisper.MockEngine{})

	r := newTranscribeRequest(t, "recording", "silence.wav", testutil.SilenceWAV(16000, time.Second))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400; got %v", w.Result().Status)
	}
}

func TestTranscribeUndecodableUpload(t *testing.T) {
	mux := newMux(t, &whisper.MockEngine{})

	r := newTranscribeRequest(t, "audio", "junk.bin", []byte("not audio at all"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400; got %v", w.Result().Status)
	}
}

func TestTranscribeEngineFailure(t *testing.T) {
	mux := newMux(t, &whisper.MockEngine{Err: fmt.Errorf("inference backend down")})

	r := newTranscribeRequest(t, "audio", "silence.wav", testutil.SilenceWAV(16000, time.Second))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Result().StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502; got %v", w.Result().Status)
	}
}

// Sequential requests must each be transcribed from their own audio, with
// no leakage from a previous upload.
func TestSequentialRequestsAreIndependent(t *testing.T) {
	engine := &whisper.MockEngine{
		ReplyFn: func(samples []float32, sampleRate int) string {
			return fmt.Sprintf("%d samples", len(samples))
		},
	}
	mux := newMux(t, engine)

	durations := []time.Duration{time.Second, 2 * time.Second}
	for _, d := range durations {
		r := newTranscribeRequest(t, "audio", "clip.wav", testutil.SilenceWAV(16000, d))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		res := w.Result()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected status OK; got %v", res.Status)
		}
		var body TranscriptionResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("could not decode response: %s", err)
		}
		want := fmt.Sprintf("%d samples", int(16000*d.Seconds()))
		if body.Text != want {
			t.Errorf("expected %q but got %q", want, body.Text)
		}
	}
}

func TestHealth(t *testing.T) {
	mux := newMux(t, &whisper.MockEngine{})

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	res := w.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK; got %v", res.Status)
	}
	var body HealthResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("could not decode response: %s", err)
	}
	if !body.OK || body.Engine != "mock" {
		t.Errorf("unexpected health body: %+v", body)
	}
}
