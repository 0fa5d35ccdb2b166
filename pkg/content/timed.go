package content

import (
	"strings"
	"time"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// DefaultWordsPerMinute is the speaking-rate estimate used when the episode
// duration is unknown. Conversational podcast speech runs around 150 wpm.
const DefaultWordsPerMinute = 150.0

// TimedFromText builds a pseudo-timestamped transcript from an untimed
// transcript document. The text is split into sentences and each sentence
// gets a time range proportional to its word count: against the known audio
// duration when duration > 0, otherwise against a words-per-minute estimate.
//
// The timestamps are approximations. They exist so the hand detector can
// report usable time ranges for published transcripts that carry no timing.
func TimedFromText(text string, duration float64) *domain.Transcript {
	text = strings.TrimSpace(text)

	sentences := splitSentences(text)
	totalWords := 0
	wordCounts := make([]int, len(sentences))
	for i, s := range sentences {
		wordCounts[i] = len(strings.Fields(s))
		totalWords += wordCounts[i]
	}

	if duration <= 0 {
		duration = float64(totalWords) / DefaultWordsPerMinute * 60.0
	}

	segments := make([]domain.Segment, 0, len(sentences))
	var secondsPerWord float64
	if totalWords > 0 {
		secondsPerWord = duration / float64(totalWords)
	}

	cursor := 0.0
	for i, s := range sentences {
		length := float64(wordCounts[i]) * secondsPerWord
		segments = append(segments, domain.Segment{
			ID:    i,
			Start: cursor,
			End:   cursor + length,
			Text:  s,
		})
		cursor += length
	}

	return &domain.Transcript{
		Duration:    duration,
		Language:    "en",
		Text:        text,
		Segments:    segments,
		Source:      domain.SourceDocument,
		ProcessedAt: time.Now(),
	}
}

// splitSentences splits text on sentence-ending punctuation. Crude, but
// transcript documents are prose and this keeps segments short enough for
// per-segment scoring.
func splitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var (
		sentences []string
		current   strings.Builder
	)

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?':
			flush()
		}
	}
	flush()

	return sentences
}
