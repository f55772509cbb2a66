package whisper

import (
	"os"
	"strconv"
)

type Config struct {
	// Addr is the listen address for the HTTP service.
	Addr string

	// Engine selects the inference backend: whispercpp, openai or mock.
	Engine string

	// Model is a ggml model path for the whispercpp engine or a model
	// name for the openai engine.
	Model string

	// ServerBin and ServerPort configure the whisper-server subprocess.
	ServerBin  string
	ServerPort int

	// SpoolDir is where uploads are written before decoding.
	SpoolDir string

	OpenAIKey string
}

// LoadConfig reads configuration from the environment, applying defaults
// for anything unset. Call godotenv.Load first if a .env file should be
// honored.
func LoadConfig() Config {
	return Config{
		Addr:       envOr("CLAIJ_ADDR", ":8000"),
		Engine:     envOr("CLAIJ_ENGINE", "whispercpp"),
		Model:      envOr("CLAIJ_MODEL", "models/ggml-small.bin"),
		ServerBin:  envOr("WHISPER_SERVER_BIN", "whisper-server"),
		ServerPort: envIntOr("WHISPER_SERVER_PORT", 8178),
		SpoolDir:   envOr("CLAIJ_SPOOL_DIR", os.TempDir()),
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
