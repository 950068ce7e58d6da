package driven

import "context"

// CommandRunner abstracts command execution for testing.
type CommandRunner interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// MediaTranscoder extracts a compact audio stream from an audio or video file.
type MediaTranscoder interface {
	// ToAudio returns the transcoded audio and its MIME type.
	ToAudio(ctx context.Context, name string, data []byte) ([]byte, string, error)
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	// Transcribe returns the transcript of audio encoded as mimeType.
	Transcribe(ctx context.Context, fileName, mimeType string, audio []byte) (string, error)
}
