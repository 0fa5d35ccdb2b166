package domain

import "time"

// Episode represents a single podcast episode discovered in an RSS/Atom feed.
type Episode struct {
	// GUID uniquely identifies the episode within its feed. Falls back to the
	// episode title when the feed does not provide one.
	GUID string `bson:"guid" json:"guid"`

	// Title is the episode title as published in the feed.
	Title string `bson:"title" json:"title"`

	// Published is the raw publication date string from the feed ("Unknown" when absent).
	Published string `bson:"published" json:"published"`

	// AudioURL is the URL of the episode's audio enclosure.
	AudioURL string `bson:"audio_url" json:"audio_url"`

	// PageURL is the episode web page (feed item link), when available.
	PageURL string `bson:"page_url,omitempty" json:"page_url,omitempty"`

	// ShowNotes is the episode description reduced to plain text.
	ShowNotes string `bson:"show_notes,omitempty" json:"show_notes,omitempty"`
}

// EpisodeResult is the outcome of processing one episode: where the artifacts
// live on disk and which hands were detected.
type EpisodeResult struct {
	Episode        Episode   `bson:"episode" json:"episode"`
	AudioFile      string    `bson:"audio_file" json:"audio_file"`
	TranscriptFile string    `bson:"transcript_file" json:"transcript_file"`
	ReportFile     string    `bson:"report_file" json:"report_file"`
	Hands          []Hand    `bson:"hands" json:"hands"`
	HandsCount     int       `bson:"hands_count" json:"hands_count"`
	ProcessedAt    time.Time `bson:"processed_at" json:"processed_at"`
}
