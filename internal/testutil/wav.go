// Package testutil synthesizes WAV fixtures for tests.
package testutil

import (
	"math"
	"time"

	"github.com/JulesGosnell/claij/whisper"
)

// SilenceWAV returns a mono 16-bit PCM WAV of silence.
func SilenceWAV(sampleRate int, d time.Duration) []byte {
	n := int(float64(sampleRate) * d.Seconds())
	return whisper.EncodeWAV(make([]float32, n), sampleRate)
}

// ToneWAV returns a mono 16-bit PCM WAV containing a sine tone.
func ToneWAV(sampleRate int, freq float64, d time.Duration) []byte {
	n := int(float64(sampleRate) * d.Seconds())
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = 0.25 * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return whisper.EncodeWAV(samples, sampleRate)
}
