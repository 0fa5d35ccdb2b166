package domain

import "time"

// Transcript sources.
const (
	SourceWhisper  = "whisper"  // produced by a speech-to-text model
	SourceDocument = "document" // extracted from a published transcript document (PDF/TXT)
	SourceFile     = "file"     // loaded from a transcript JSON file on disk
)

// Segment is a timestamped portion of a transcript. Times are in seconds from
// the start of the audio, matching what speech-to-text models emit.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is a timestamped transcript of one audio file.
type Transcript struct {
	// AudioFile is the path of the audio file this transcript was produced from.
	// Empty for transcripts that did not originate from local audio.
	AudioFile string `json:"file,omitempty"`

	// Duration is the audio duration in seconds (0 when unknown).
	Duration float64 `json:"duration"`

	Language string    `json:"language"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`

	// Source records how the transcript was obtained (see Source* constants).
	Source string `json:"source"`

	ProcessedAt time.Time `json:"processed_at"`
}
