package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// ErrMissingAPIKey is returned when no API key is configured for the Whisper backend.
var ErrMissingAPIKey = errors.New("whisper API key is not set")

// WhisperConfig holds configuration for the Whisper transcription backend
type WhisperConfig struct {
	APIKey  string
	BaseURL string // optional; set for Whisper-compatible endpoints
	Model   string // default: whisper-1

	// Language hints the spoken language (ISO 639-1), optional.
	Language string

	// Prompt biases the model's vocabulary. Poker jargon ("three-bet",
	// "check-raise", "pocket aces") transcribes noticeably better with a hint.
	Prompt string
}

// Whisper transcribes audio via the OpenAI Whisper API (or a compatible endpoint),
// requesting verbose output so segment timestamps come back with the text.
type Whisper struct {
	cfg    WhisperConfig
	client *openai.Client
}

// NewWhisper creates a Whisper transcriber with defaults applied
func NewWhisper(cfg WhisperConfig) (*Whisper, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "A poker strategy podcast discussing hands: preflop, flop, turn, river, three-bet, check-raise, pocket aces."
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Whisper{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

func (w *Whisper) Name() string { return "openai-whisper" }

// Transcribe uploads the audio file and converts the verbose response into a
// domain transcript with per-segment timestamps.
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) (*domain.Transcript, error) {
	log.Printf("Whisper: transcribing %s (model=%s)", audioPath, w.cfg.Model)

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.cfg.Model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: w.cfg.Language,
		Prompt:   w.cfg.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	segments := make([]domain.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, domain.Segment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	transcript := &domain.Transcript{
		AudioFile:   audioPath,
		Duration:    resp.Duration,
		Language:    resp.Language,
		Text:        resp.Text,
		Segments:    segments,
		Source:      domain.SourceWhisper,
		ProcessedAt: time.Now(),
	}

	log.Printf("Whisper: got %d segments (%.1fs of audio)", len(segments), transcript.Duration)
	return transcript, nil
}
