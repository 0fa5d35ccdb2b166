package transcribe

import (
	"context"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// Transcriber converts an audio file into a timestamped transcript
type Transcriber interface {
	// Transcribe transcribes the audio file at audioPath
	Transcribe(ctx context.Context, audioPath string) (*domain.Transcript, error)

	// Name returns the provider name
	Name() string
}
