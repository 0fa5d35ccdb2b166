package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

const verboseTranscriptionJSON = `{
  "task": "transcribe",
  "language": "english",
  "duration": 12.5,
  "text": "I was dealt pocket aces. The flop comes ten of hearts.",
  "segments": [
    {"id": 0, "seek": 0, "start": 0.0, "end": 5.2, "text": "I was dealt pocket aces."},
    {"id": 1, "seek": 0, "start": 5.2, "end": 12.5, "text": "The flop comes ten of hearts."}
  ]
}`

func TestNewWhisper_RequiresAPIKey(t *testing.T) {
	if _, err := NewWhisper(WhisperConfig{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestWhisperTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("Unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(verboseTranscriptionJSON))
	}))
	defer server.Close()

	audioPath := filepath.Join(t.TempDir(), "ep42.mp3")
	if err := os.WriteFile(audioPath, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("Failed to write audio file: %v", err)
	}

	whisper, err := NewWhisper(WhisperConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewWhisper failed: %v", err)
	}

	transcript, err := whisper.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}

	if transcript.Source != domain.SourceWhisper {
		t.Errorf("Expected source %q, got %q", domain.SourceWhisper, transcript.Source)
	}
	if transcript.AudioFile != audioPath {
		t.Errorf("Expected audio file %q, got %q", audioPath, transcript.AudioFile)
	}
	if transcript.Duration != 12.5 {
		t.Errorf("Expected duration 12.5, got %.1f", transcript.Duration)
	}
	if transcript.Language != "english" {
		t.Errorf("Expected language english, got %q", transcript.Language)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(transcript.Segments))
	}
	if transcript.Segments[1].Start != 5.2 || transcript.Segments[1].End != 12.5 {
		t.Errorf("Segment timing mismatch: %+v", transcript.Segments[1])
	}
}

func TestWhisperTranscribe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	audioPath := filepath.Join(t.TempDir(), "ep42.mp3")
	if err := os.WriteFile(audioPath, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("Failed to write audio file: %v", err)
	}

	whisper, err := NewWhisper(WhisperConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewWhisper failed: %v", err)
	}

	if _, err := whisper.Transcribe(context.Background(), audioPath); err == nil {
		t.Fatal("Expected error from failing API")
	}
}
