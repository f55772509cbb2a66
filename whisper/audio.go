package whisper

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// DecodeWAV reads a WAV file and returns its samples as float32 values in
// [-1, 1], along with the file's sample rate. Multi-channel audio is
// downmixed to mono by averaging the channels.
func DecodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding PCM data: %w", err)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	samples := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		var frame float32
		for c := 0; c < channels; c++ {
			frame += float32(buf.Data[i+c]) / scale
		}
		samples = append(samples, frame/float32(channels))
	}

	return samples, buf.Format.SampleRate, nil
}

// EncodeWAV renders float32 samples as a mono 16-bit PCM WAV file.
// Samples outside [-1, 1] are clipped.
func EncodeWAV(samples []float32, sampleRate int) []byte {
	dataLen := len(samples) * 2

	var b bytes.Buffer
	b.Grow(44 + dataLen)

	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&b, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&b, binary.LittleEndian, uint16(16))           // bits per sample

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataLen))
	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.Write(&b, binary.LittleEndian, int16(s*32767))
	}

	return b.Bytes()
}
