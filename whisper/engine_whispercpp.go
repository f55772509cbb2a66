package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"time"
)

// ServerEngine runs inference through a whisper.cpp whisper-server
// subprocess. The subprocess loads the ggml model into memory once at
// startup and keeps it resident until Close.
type ServerEngine struct {
	cmd    *exec.Cmd
	url    string
	model  string
	client *http.Client
}

// StartServerEngine spawns whisper-server with the configured model and
// blocks until it answers HTTP or the startup deadline passes. Model
// loading failures surface here, before the service accepts any request.
func StartServerEngine(ctx context.Context, cfg Config, device string) (*ServerEngine, error) {
	if _, err := os.Stat(cfg.Model); err != nil {
		return nil, fmt.Errorf("model file %s: %w", cfg.Model, err)
	}

	args := []string{
		"-m", cfg.Model,
		"--host", "127.0.0.1",
		"--port", fmt.Sprintf("%d", cfg.ServerPort),
	}
	if device == "cpu" {
		args = append(args, "--no-gpu")
	}

	cmd := exec.Command(cfg.ServerBin, args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", cfg.ServerBin, err)
	}

	e := &ServerEngine{
		cmd:    cmd,
		url:    fmt.Sprintf("http://127.0.0.1:%d", cfg.ServerPort),
		model:  cfg.Model,
		client: &http.Client{},
	}

	if err := e.waitReady(ctx, 120*time.Second); err != nil {
		e.Close()
		return nil, fmt.Errorf("whisper-server did not become ready: %w", err)
	}
	log.Printf("whisper-server ready at %s (model %s, device %s)", e.url, cfg.Model, device)
	return e, nil
}

// waitReady polls the subprocess until it answers HTTP. Model loading can
// take a while for the larger ggml files, hence the generous deadline.
func (e *ServerEngine) waitReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, "GET", e.url+"/", nil)
		if err != nil {
			return err
		}
		resp, err := e.client.Do(req)
		if err == nil {
			resp.Body.Close()
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("no response within %s", timeout)
}

func (e *ServerEngine) Name() string { return "whispercpp" }

func (e *ServerEngine) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	wavData := EncodeWAV(samples, sampleRate)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("building inference request: %w", err)
	}
	if _, err := part.Write(wavData); err != nil {
		return "", fmt.Errorf("building inference request: %w", err)
	}
	w.WriteField("response_format", "json")
	w.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", e.url+"/inference", &body)
	if err != nil {
		return "", fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling whisper-server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whisper-server returned %d: %s", resp.StatusCode, data)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding whisper-server response: %w", err)
	}
	return result.Text, nil
}

func (e *ServerEngine) Close() error {
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	if err := e.cmd.Process.Kill(); err != nil {
		return err
	}
	e.cmd.Wait()
	return nil
}
