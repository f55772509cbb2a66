// whisper-service accepts audio uploads on /transcribe and returns the
// transcribed text. The speech model is loaded once at startup; failure to
// load it is fatal.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JulesGosnell/claij/whisper"
	"github.com/JulesGosnell/claij/whisper/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, falling back to environment variables")
	}
	cfg := whisper.LoadConfig()
	device := whisper.DetectDevice()

	engine, err := whisper.NewEngine(context.Background(), cfg, device)
	if err != nil {
		log.Fatalf("could not load model: %v", err)
	}
	defer engine.Close()

	transcriber := whisper.NewTranscriber(engine, cfg.SpoolDir)
	mux := server.NewTranscriptionMux(transcriber, server.Health{
		Engine: engine.Name(),
		Model:  cfg.Model,
		Device: device,
	})

	srv := http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down")
		srv.Shutdown(context.Background())
	}()

	log.Printf("whisper service started with model %q on device %q, listening on %s",
		cfg.Model, device, cfg.Addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
