package domain

// ScoreBreakdown records how a detection scored against each term group.
type ScoreBreakdown struct {
	HandStart int `bson:"hand_start" json:"hand_start"`
	Cards     int `bson:"cards" json:"cards"`
	Actions   int `bson:"actions" json:"actions"`
	Context   int `bson:"context" json:"context"`
}

// Total is the combined score across all term groups.
func (s ScoreBreakdown) Total() int {
	return s.HandStart + s.Cards + s.Actions + s.Context
}

// Add accumulates another breakdown into this one.
func (s *ScoreBreakdown) Add(other ScoreBreakdown) {
	s.HandStart += other.HandStart
	s.Cards += other.Cards
	s.Actions += other.Actions
	s.Context += other.Context
}

// Hand is a detected poker-hand discussion in a transcript: a contiguous time
// range, an aggregate confidence in [0,1], and the text that triggered it.
type Hand struct {
	// Start and End are seconds from the start of the audio.
	Start float64 `bson:"start" json:"start"`
	End   float64 `bson:"end" json:"end"`

	Confidence float64        `bson:"confidence" json:"confidence"`
	Scores     ScoreBreakdown `bson:"scores" json:"scores"`

	// Excerpt is the transcript text of the contributing segments.
	Excerpt string `bson:"excerpt" json:"excerpt"`

	// SegmentCount is how many transcript segments were merged into this hand.
	SegmentCount int `bson:"segment_count" json:"segment_count"`
}

// Duration is the length of the hand discussion in seconds.
func (h Hand) Duration() float64 {
	return h.End - h.Start
}
