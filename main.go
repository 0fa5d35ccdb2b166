package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/config"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/detect"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/download"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/feed"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/pipeline"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/store"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/transcribe"
)

func main() {
	var (
		rssURL         = flag.String("rss", "", "Podcast RSS feed URL to process")
		audioFile      = flag.String("audio-file", "", "Path to a local audio file to analyze")
		transcriptFile = flag.String("transcript-file", "", "Path to an existing transcript JSON file to scan")

		outputDir         = flag.String("output-dir", "", "Output directory for results (default: OUTPUT_DIR env or ./output)")
		maxEpisodes       = flag.Int("max-episodes", 1, "Max episodes to process from the feed (<=0 means no limit)")
		skipEpisodes      = flag.Int("skip-episodes", 0, "Number of newest episodes to skip")
		workers           = flag.Int("workers", 0, "Parallel episode workers (0 = WORKERS env)")
		titleContains     = flag.String("title-contains", "", "Only process episodes whose title contains this keyword")
		preferPublished   = flag.Bool("prefer-published-transcript", false, "Look for a published transcript document (PDF/TXT) on the episode page before transcribing audio")
		skipTranscription = flag.Bool("skip-transcription", false, "Never call the transcription API; rely on cached or published transcripts")

		storeBackend = flag.String("store", "", "Result store backend: \"mongo\", \"postgres\", or empty for file-only")

		minScore = flag.Int("min-score", 0, "Minimum detection score for a segment hit (0 = default)")
		mergeGap = flag.Float64("merge-gap", 0, "Max gap in seconds between hits merged into one hand (0 = default)")
	)
	flag.Parse()

	if countSet(*rssURL, *audioFile, *transcriptFile) != 1 {
		log.Fatalf("exactly one of -rss, -audio-file, or -transcript-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}
	if *workers <= 0 {
		*workers = cfg.Workers
	}

	ctx := context.Background()

	var transcriber transcribe.Transcriber
	if *skipTranscription {
		log.Printf("Transcription disabled by -skip-transcription")
	} else {
		transcriber = buildTranscriber(cfg)
	}
	detector := detect.New(detect.Config{MinScore: *minScore, MergeGap: *mergeGap})

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		OutputDir:                 *outputDir,
		PreferPublishedTranscript: *preferPublished,
	}, download.NewDownloader(), transcriber, detector)

	start := time.Now()

	switch {
	case *transcriptFile != "":
		result, err := runner.ProcessTranscript(*transcriptFile)
		if err != nil {
			log.Fatalf("Failed to scan transcript: %v", err)
		}
		printResult(result)

	case *audioFile != "":
		result, err := runner.ProcessAudioFile(ctx, *audioFile)
		if err != nil {
			log.Fatalf("Failed to analyze audio file: %v", err)
		}
		printResult(result)

	default:
		summary, err := runFeed(ctx, cfg, runner, *rssURL, *skipEpisodes, *maxEpisodes, *titleContains, *storeBackend, *workers)
		if err != nil {
			log.Fatalf("Pipeline run failed: %v", err)
		}
		fmt.Printf("Processed %d/%d episodes (%d failed), %d hands found\n",
			summary.Processed, summary.Episodes, summary.Failed, summary.Hands)
	}

	log.Printf("Done. Duration: %s", time.Since(start))
}

// runFeed wires the store, filters, source, and pipeline for an RSS run.
// Errors are returned, not fatal, so the deferred store close still runs.
func runFeed(ctx context.Context, cfg *config.Config, runner *pipeline.Runner, rssURL string, skip, max int, titleContains, storeBackend string, workers int) (pipeline.Summary, error) {
	resultStore := buildStore(ctx, cfg, storeBackend)

	var filters []feed.EpisodeFilter
	if titleContains != "" {
		filters = append(filters, feed.NewTitleKeywordFilter(titleContains))
	}

	var sink pipeline.ResultSink
	if resultStore != nil {
		defer func() {
			if err := resultStore.Close(ctx); err != nil {
				log.Printf("Failed to close store: %v", err)
			}
		}()
		sink = resultStore

		// Skip episodes we already processed in a previous run
		processed, err := resultStore.ProcessedGUIDs(ctx)
		if err != nil {
			log.Printf("Could not load processed episodes, continuing without dedup: %v", err)
		} else if len(processed) > 0 {
			filters = append(filters, feed.NewAlreadyProcessedFilter(processed))
		}
	}

	source := pipeline.NewFeedSource(feed.NewFetcher(), rssURL, skip, max, filters...)

	p := pipeline.NewPipeline(source, runner, sink, workers)
	return p.Run(ctx)
}

// buildTranscriber returns the Whisper transcriber, or nil when no API key
// is configured (cache/published-transcript runs still work without one).
func buildTranscriber(cfg *config.Config) transcribe.Transcriber {
	whisper, err := transcribe.NewWhisper(transcribe.WhisperConfig{
		APIKey:   cfg.Whisper.APIKey,
		BaseURL:  cfg.Whisper.BaseURL,
		Model:    cfg.Whisper.Model,
		Language: cfg.Whisper.Language,
	})
	if err != nil {
		log.Printf("Transcription disabled: %v", err)
		return nil
	}
	return whisper
}

// buildStore returns the selected store, or nil for file-only runs
func buildStore(ctx context.Context, cfg *config.Config, backend string) store.Store {
	switch backend {
	case "":
		return nil
	case "mongo":
		if cfg.Store.MongoURI == "" {
			log.Fatalf("-store=mongo requires MONGO_URI")
		}
		s, err := store.NewMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDB, cfg.Store.MongoCollection)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		return s
	case "postgres":
		if cfg.Store.PostgresDSN == "" {
			log.Fatalf("-store=postgres requires POSTGRES_DSN")
		}
		s, err := store.NewPostgres(ctx, store.PostgresConfig{DSN: cfg.Store.PostgresDSN})
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		return s
	default:
		log.Fatalf("unknown store backend: %s", backend)
		return nil
	}
}

func printResult(result *domain.EpisodeResult) {
	fmt.Printf("Analysis complete!\n")
	fmt.Printf("Report: %s\n", result.ReportFile)
	fmt.Printf("Found %d potential poker hands\n", result.HandsCount)
}

// countSet counts how many of the given flag values are non-empty
func countSet(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n
}
