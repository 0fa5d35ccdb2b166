package detect

import (
	"log"
	"math"
	"strings"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// Config holds the detection thresholds
type Config struct {
	// MinScore is the minimum combined score for a segment to count as a hit
	MinScore int

	// NormalizeScore is the score that maps to confidence 1.0; confidence is
	// min(total/NormalizeScore, 1.0)
	NormalizeScore float64

	// MergeGap is the maximum silence (seconds) between two hit segments that
	// still merges them into one hand
	MergeGap float64
}

// DefaultConfig returns the detection defaults
func DefaultConfig() Config {
	return Config{
		MinScore:       3,
		NormalizeScore: 8.0,
		MergeGap:       15.0,
	}
}

// Detector scans transcript segments for poker-hand discussions.
// Detection is a single deterministic pass: score each segment against the
// lexicon, threshold, then merge adjacent hits into discrete hand events.
type Detector struct {
	cfg     Config
	lexicon *Lexicon
}

// New creates a detector with the given config and the default lexicon
func New(cfg Config) *Detector {
	if cfg.MinScore <= 0 {
		cfg.MinScore = DefaultConfig().MinScore
	}
	if cfg.NormalizeScore <= 0 {
		cfg.NormalizeScore = DefaultConfig().NormalizeScore
	}
	if cfg.MergeGap <= 0 {
		cfg.MergeGap = DefaultConfig().MergeGap
	}
	return &Detector{
		cfg:     cfg,
		lexicon: NewLexicon(),
	}
}

// hit is a segment that crossed the detection threshold
type hit struct {
	segment    domain.Segment
	scores     domain.ScoreBreakdown
	confidence float64
}

// Detect scans the segments and returns detected hands sorted by start time.
// An empty or nil segment list yields an empty result.
func (d *Detector) Detect(segments []domain.Segment) []domain.Hand {
	hits := d.scanSegments(segments)
	hands := d.mergeHits(hits)

	log.Printf("Detector: %d segments scanned, %d hits, %d hands after merge",
		len(segments), len(hits), len(hands))
	return hands
}

// scanSegments scores every segment and collects those above threshold, in
// transcript order.
func (d *Detector) scanSegments(segments []domain.Segment) []hit {
	var hits []hit
	for i, segment := range segments {
		scores := d.scoreSegment(segments, i)
		total := scores.Total()

		// A hit needs substantial poker content: crossing the threshold on
		// context and actions alone is not enough without a card mention or
		// a hand-start phrase.
		if total < d.cfg.MinScore || (scores.Cards < 1 && scores.HandStart < 1) {
			continue
		}

		hits = append(hits, hit{
			segment:    segment,
			scores:     scores,
			confidence: math.Min(float64(total)/d.cfg.NormalizeScore, 1.0),
		})
	}
	return hits
}

// scoreSegment computes the score breakdown for segments[i]
func (d *Detector) scoreSegment(segments []domain.Segment, i int) domain.ScoreBreakdown {
	text := strings.ToLower(segments[i].Text)

	var scores domain.ScoreBreakdown

	for _, pattern := range d.lexicon.handStart {
		if pattern.MatchString(text) {
			scores.HandStart += 2
		}
	}

	for _, pattern := range d.lexicon.cards {
		scores.Cards += len(pattern.FindAllString(text, -1))
	}

	for _, pattern := range d.lexicon.actions {
		if pattern.MatchString(text) {
			scores.Actions++
		}
	}

	if d.hasStreetContext(segments, i) {
		scores.Context++
	}

	return scores
}

// hasStreetContext checks the segment plus its immediate neighbors for
// street terms. Multi-segment hand discussions mention streets constantly,
// so surrounding context lifts borderline segments.
func (d *Detector) hasStreetContext(segments []domain.Segment, i int) bool {
	var window []string
	if i > 0 {
		window = append(window, segments[i-1].Text)
	}
	window = append(window, segments[i].Text)
	if i < len(segments)-1 {
		window = append(window, segments[i+1].Text)
	}

	context := strings.ToLower(strings.Join(window, " "))
	for _, term := range d.lexicon.streets {
		if strings.Contains(context, term) {
			return true
		}
	}
	return false
}

// mergeHits folds consecutive hits into discrete hands. Two hits merge when
// the gap between them is at most MergeGap seconds; each hit lands in exactly
// one hand, so the result is deduplicated by construction and ordered by
// start time.
func (d *Detector) mergeHits(hits []hit) []domain.Hand {
	if len(hits) == 0 {
		return []domain.Hand{}
	}

	var (
		hands   []domain.Hand
		current domain.Hand
		open    bool
	)

	flush := func() {
		if open {
			hands = append(hands, current)
			open = false
		}
	}

	for _, h := range hits {
		if open && h.segment.Start-current.End <= d.cfg.MergeGap {
			// Extend the open hand
			current.End = h.segment.End
			current.Scores.Add(h.scores)
			current.Confidence = math.Max(current.Confidence, h.confidence)
			current.Excerpt += " " + strings.TrimSpace(h.segment.Text)
			current.SegmentCount++
			continue
		}

		flush()
		current = domain.Hand{
			Start:        h.segment.Start,
			End:          h.segment.End,
			Confidence:   h.confidence,
			Scores:       h.scores,
			Excerpt:      strings.TrimSpace(h.segment.Text),
			SegmentCount: 1,
		}
		open = true
	}
	flush()

	return hands
}
