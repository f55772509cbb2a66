package whisper

import (
	"os"
	"os/exec"
)

// DetectDevice reports the compute device inference should run on:
// "cuda" when an NVIDIA GPU is visible to the process, "cpu" otherwise.
func DetectDevice() string {
	if _, err := os.Stat("/dev/nvidiactl"); err == nil {
		return "cuda"
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return "cuda"
	}
	return "cpu"
}
