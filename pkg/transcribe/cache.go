package transcribe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// CachePath returns the transcript JSON path for an audio file:
// "<dir>/<stem>_transcript.json" next to the audio.
func CachePath(audioPath string) string {
	dir := filepath.Dir(audioPath)
	base := filepath.Base(audioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_transcript.json")
}

// Save writes a transcript as indented JSON to path
func Save(transcript *domain.Transcript, path string) error {
	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Load reads a transcript JSON file from path
func Load(path string) (*domain.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var transcript domain.Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	if transcript.Source == "" {
		transcript.Source = domain.SourceFile
	}
	return &transcript, nil
}

// Exists reports whether a non-empty transcript file is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
