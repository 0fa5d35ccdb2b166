package report

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// WriteMarkdown writes the per-episode hand report to outputPath.
// Hands are listed in chronological order so the report reads as a
// timestamped index into the episode.
func WriteMarkdown(transcript *domain.Transcript, hands []domain.Hand, outputPath string) error {
	var b strings.Builder

	b.WriteString("# Poker Hands Analysis\n\n")
	if transcript.AudioFile != "" {
		fmt.Fprintf(&b, "**Source:** %s\n", transcript.AudioFile)
	}
	fmt.Fprintf(&b, "**Duration:** %.1f seconds\n", transcript.Duration)
	fmt.Fprintf(&b, "**Language:** %s\n", transcript.Language)
	fmt.Fprintf(&b, "**Transcript source:** %s\n", transcript.Source)
	fmt.Fprintf(&b, "**Processed:** %s\n\n", transcript.ProcessedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- **Total hands detected:** %d\n", len(hands))
	fmt.Fprintf(&b, "- **Average confidence:** %.2f\n\n", averageConfidence(hands))

	b.WriteString("## Detected Hands\n\n")

	for i, hand := range hands {
		fmt.Fprintf(&b, "### Hand %d\n", i+1)
		fmt.Fprintf(&b, "**Timestamp:** %s - %s\n", Timestamp(hand.Start), Timestamp(hand.End))
		fmt.Fprintf(&b, "**Confidence:** %.2f\n", hand.Confidence)
		fmt.Fprintf(&b, "**Scores:** hand-start=%d cards=%d actions=%d context=%d\n",
			hand.Scores.HandStart, hand.Scores.Cards, hand.Scores.Actions, hand.Scores.Context)
		fmt.Fprintf(&b, "**Text:** %s\n\n---\n\n", strings.TrimSpace(hand.Excerpt))
	}

	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteEpisodeJSON writes the episode result metadata as indented JSON
func WriteEpisodeJSON(result *domain.EpisodeResult, outputPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal episode result: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write episode result: %w", err)
	}
	return nil
}

// Timestamp formats seconds-from-start as m:ss (h:mm:ss past the hour mark)
func Timestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func averageConfidence(hands []domain.Hand) float64 {
	if len(hands) == 0 {
		return 0
	}
	var sum float64
	for _, hand := range hands {
		sum += hand.Confidence
	}
	return sum / float64(len(hands))
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename turns an episode title into a safe directory/file name:
// unsafe characters become underscores and the result is capped at 100
// characters. The cap counts runes so multibyte titles never get cut
// mid-sequence.
func SanitizeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	safe = strings.TrimSpace(safe)
	if runes := []rune(safe); len(runes) > 100 {
		safe = string(runes[:100])
	}
	return safe
}
