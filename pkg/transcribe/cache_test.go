package transcribe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

func TestCachePath(t *testing.T) {
	tests := []struct {
		audioPath string
		want      string
	}{
		{"/data/shows/ep42.mp3", "/data/shows/ep42_transcript.json"},
		{"ep42.m4a", "ep42_transcript.json"},
		{"/data/no_extension", "/data/no_extension_transcript.json"},
	}

	for _, tt := range tests {
		if got := CachePath(tt.audioPath); got != tt.want {
			t.Errorf("CachePath(%q) = %q, want %q", tt.audioPath, got, tt.want)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	transcript := &domain.Transcript{
		AudioFile: "/data/ep42.mp3",
		Duration:  123.4,
		Language:  "english",
		Text:      "pocket aces on the flop",
		Segments: []domain.Segment{
			{ID: 0, Start: 0, End: 5.5, Text: "pocket aces"},
			{ID: 1, Start: 5.5, End: 10.0, Text: "on the flop"},
		},
		Source:      domain.SourceWhisper,
		ProcessedAt: time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "ep42_transcript.json")
	if err := Save(transcript, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.AudioFile != transcript.AudioFile {
		t.Errorf("AudioFile mismatch: %q", loaded.AudioFile)
	}
	if loaded.Duration != transcript.Duration {
		t.Errorf("Duration mismatch: %.1f", loaded.Duration)
	}
	if loaded.Source != domain.SourceWhisper {
		t.Errorf("Source mismatch: %q", loaded.Source)
	}
	if len(loaded.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(loaded.Segments))
	}
	if loaded.Segments[1].Text != "on the flop" {
		t.Errorf("Segment text mismatch: %q", loaded.Segments[1].Text)
	}
}

func TestLoad_DefaultsSource(t *testing.T) {
	// Transcript files produced elsewhere may carry no source field
	path := filepath.Join(t.TempDir(), "t.json")
	raw := `{"duration": 10, "text": "hi", "segments": [{"id":0,"start":0,"end":10,"text":"hi"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("Failed to write transcript: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Source != domain.SourceFile {
		t.Errorf("Expected source %q, got %q", domain.SourceFile, loaded.Source)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	if Exists(missing) {
		t.Error("Expected Exists=false for missing file")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if Exists(empty) {
		t.Error("Expected Exists=false for empty file")
	}

	full := filepath.Join(dir, "full.json")
	if err := os.WriteFile(full, []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if !Exists(full) {
		t.Error("Expected Exists=true for non-empty file")
	}
}
