package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/detect"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/report"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/transcribe"
)

// scantranscript runs the hand detector over an existing transcript JSON
// file and writes the markdown report next to it. No network, no audio.
func main() {
	var (
		transcriptPath = flag.String("transcript", "", "Path to a transcript JSON file")
		reportPath     = flag.String("report", "", "Report output path (default: <transcript>_poker_hands.md)")
		minScore       = flag.Int("min-score", 0, "Minimum detection score for a segment hit (0 = default)")
		mergeGap       = flag.Float64("merge-gap", 0, "Max gap in seconds between hits merged into one hand (0 = default)")
	)
	flag.Parse()

	if *transcriptPath == "" {
		log.Fatalf("-transcript is required")
	}

	transcript, err := transcribe.Load(*transcriptPath)
	if err != nil {
		log.Fatalf("Failed to load transcript: %v", err)
	}

	detector := detect.New(detect.Config{MinScore: *minScore, MergeGap: *mergeGap})
	hands := detector.Detect(transcript.Segments)

	out := *reportPath
	if out == "" {
		out = *transcriptPath + "_poker_hands.md"
	}

	if err := report.WriteMarkdown(transcript, hands, out); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	fmt.Printf("Found %d hands. Report: %s\n", len(hands), out)

	for i, hand := range hands {
		fmt.Printf("Hand %d: %s - %s (confidence %.2f)\n",
			i+1, report.Timestamp(hand.Start), report.Timestamp(hand.End), hand.Confidence)
	}
}
