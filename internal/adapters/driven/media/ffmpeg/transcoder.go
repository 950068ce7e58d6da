// Package ffmpeg extracts a compact speech track from audio and video files.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure Transcoder implements the interface.
var _ driven.MediaTranscoder = (*Transcoder)(nil)

// Defaults for the transcoded stream: mono, 16 kHz, 64 kbit/s MP3.
const (
	DefaultBinary = "ffmpeg"
	OutputMIME    = "audio/mp3"
	sampleRate    = "16000"
	bitrate       = "64k"
)

// Transcoder runs ffmpeg through a CommandRunner.
type Transcoder struct {
	runner driven.CommandRunner
	binary string
}

// New creates a transcoder. An empty binary uses DefaultBinary.
func New(runner driven.CommandRunner, binary string) *Transcoder {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Transcoder{runner: runner, binary: binary}
}

// ToAudio writes data to a temporary directory, converts it to mono MP3
// and returns the result. The directory is removed on every path.
func (t *Transcoder) ToAudio(ctx context.Context, name string, data []byte) ([]byte, string, error) {
	dir, err := os.MkdirTemp("", "studydeck-media-*")
	if err != nil {
		return nil, "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input"+strings.ToLower(filepath.Ext(name)))
	output := filepath.Join(dir, "output.mp3")
	if err := os.WriteFile(input, data, 0600); err != nil {
		return nil, "", fmt.Errorf("write input: %w", err)
	}

	logger.Debug("Transcoding %s (%d bytes)", name, len(data))
	if _, err := t.runner.Run(ctx, t.binary,
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-vn", "-ac", "1", "-ar", sampleRate, "-b:a", bitrate,
		output,
	); err != nil {
		return nil, "", fmt.Errorf("ffmpeg: %w", err)
	}

	audio, err := os.ReadFile(output)
	if err != nil {
		return nil, "", fmt.Errorf("read transcoded audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("ffmpeg produced no audio for %s", name)
	}
	return audio, OutputMIME, nil
}
