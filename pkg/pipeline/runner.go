package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/content"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/detect"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/download"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/httpclient"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/report"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/transcribe"
)

// ErrNoTranscriber is returned when an episode needs transcription but no
// transcriber is configured and no cached transcript exists.
var ErrNoTranscriber = errors.New("no transcriber configured and no cached transcript found")

// RunnerConfig controls how the runner processes episodes
type RunnerConfig struct {
	// OutputDir is the root directory; each episode gets a subdirectory
	// named after its sanitized title.
	OutputDir string

	// PreferPublishedTranscript tries to find a transcript document (PDF/TXT)
	// on the episode page before downloading and transcribing audio.
	PreferPublishedTranscript bool
}

// Runner processes one episode end to end: download audio, obtain a
// transcript (cache, published document, or speech-to-text), detect hands,
// and write the report and metadata artifacts. Implements EpisodeProcessor.
type Runner struct {
	cfg         RunnerConfig
	downloader  *download.Downloader
	transcriber transcribe.Transcriber // optional when transcripts are cached or published
	detector    *detect.Detector
	pageClient  *httpclient.HTTPClient
}

// NewRunner creates a runner. transcriber may be nil for cache-only or
// published-transcript runs.
func NewRunner(cfg RunnerConfig, downloader *download.Downloader, transcriber transcribe.Transcriber, detector *detect.Detector) *Runner {
	return &Runner{
		cfg:         cfg,
		downloader:  downloader,
		transcriber: transcriber,
		detector:    detector,
		pageClient:  httpclient.NewClient(httpclient.BrowserClient),
	}
}

// Process processes a single feed episode
func (r *Runner) Process(ctx context.Context, episode domain.Episode) (*domain.EpisodeResult, error) {
	episodeDir := filepath.Join(r.cfg.OutputDir, report.SanitizeFilename(episode.Title))
	if err := os.MkdirAll(episodeDir, 0o755); err != nil {
		return nil, fmt.Errorf("create episode dir: %w", err)
	}

	// A published transcript document beats transcribing, when configured
	if r.cfg.PreferPublishedTranscript && episode.PageURL != "" {
		if result, err := r.processPublished(ctx, episode, episodeDir); err == nil {
			return result, nil
		} else if !errors.Is(err, content.ErrNoTranscriptURL) {
			log.Printf("Runner: published transcript for %q failed (%v), falling back to audio", episode.Title, err)
		}
	}

	r.enrichFromPage(ctx, &episode)

	audioPath, err := r.downloader.Fetch(ctx, episode.AudioURL, episodeDir)
	if err != nil {
		return nil, fmt.Errorf("download audio: %w", err)
	}

	transcript, transcriptPath, err := r.obtainTranscript(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	return r.finish(episode, audioPath, transcriptPath, transcript, reportPathFor(audioPath))
}

// ProcessAudioFile analyzes a local audio file outside of any feed context.
// Artifacts are written next to the audio file.
func (r *Runner) ProcessAudioFile(ctx context.Context, audioPath string) (*domain.EpisodeResult, error) {
	transcript, transcriptPath, err := r.obtainTranscript(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	episode := domain.Episode{
		GUID:  audioPath,
		Title: strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath)),
	}
	return r.finish(episode, audioPath, transcriptPath, transcript, reportPathFor(audioPath))
}

// ProcessTranscript analyzes an existing transcript JSON file. No network,
// no audio; the report lands next to the transcript.
func (r *Runner) ProcessTranscript(transcriptPath string) (*domain.EpisodeResult, error) {
	transcript, err := transcribe.Load(transcriptPath)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath))
	episode := domain.Episode{
		GUID:  transcriptPath,
		Title: filepath.Base(stem),
	}
	return r.finish(episode, transcript.AudioFile, transcriptPath, transcript, stem+"_poker_hands.md")
}

// obtainTranscript loads the cached transcript next to the audio file or
// transcribes the audio and caches the result.
func (r *Runner) obtainTranscript(ctx context.Context, audioPath string) (*domain.Transcript, string, error) {
	transcriptPath := transcribe.CachePath(audioPath)

	if transcribe.Exists(transcriptPath) {
		log.Printf("Runner: loading existing transcript: %s", transcriptPath)
		transcript, err := transcribe.Load(transcriptPath)
		if err != nil {
			return nil, "", fmt.Errorf("load cached transcript: %w", err)
		}
		return transcript, transcriptPath, nil
	}

	if r.transcriber == nil {
		return nil, "", ErrNoTranscriber
	}

	transcript, err := r.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, "", err
	}

	if err := transcribe.Save(transcript, transcriptPath); err != nil {
		return nil, "", err
	}
	log.Printf("Runner: transcript saved: %s", transcriptPath)

	return transcript, transcriptPath, nil
}

// processPublished fetches the episode page, locates a published transcript
// document, and analyzes it with estimated timestamps.
func (r *Runner) processPublished(ctx context.Context, episode domain.Episode, episodeDir string) (*domain.EpisodeResult, error) {
	pageHTML, _, err := r.fetchURL(ctx, episode.PageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch episode page: %w", err)
	}

	enrichFromHTML(&episode, string(pageHTML))

	docHref, err := content.FindTranscriptURL(string(pageHTML))
	if err != nil {
		return nil, err
	}

	docURL, err := content.ResolveAgainst(episode.PageURL, docHref)
	if err != nil {
		return nil, err
	}

	log.Printf("Runner: found published transcript for %q: %s", episode.Title, docURL)

	docBody, contentType, err := r.fetchURL(ctx, docURL)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript document: %w", err)
	}

	text, err := content.ExtractDocumentText(docBody, docURL, contentType)
	if err != nil {
		return nil, err
	}

	transcript := content.TimedFromText(text, 0)

	transcriptPath := filepath.Join(episodeDir, "published_transcript.json")
	if err := transcribe.Save(transcript, transcriptPath); err != nil {
		return nil, err
	}

	return r.finish(episode, "", transcriptPath, transcript, filepath.Join(episodeDir, "poker_hands.md"))
}

// finish runs detection and writes the report and episode metadata
func (r *Runner) finish(episode domain.Episode, audioPath, transcriptPath string, transcript *domain.Transcript, reportPath string) (*domain.EpisodeResult, error) {
	hands := r.detector.Detect(transcript.Segments)

	if err := report.WriteMarkdown(transcript, hands, reportPath); err != nil {
		return nil, err
	}

	result := &domain.EpisodeResult{
		Episode:        episode,
		AudioFile:      audioPath,
		TranscriptFile: transcriptPath,
		ReportFile:     reportPath,
		Hands:          hands,
		HandsCount:     len(hands),
		ProcessedAt:    time.Now(),
	}

	metadataPath := filepath.Join(filepath.Dir(reportPath), "episode_data.json")
	if err := report.WriteEpisodeJSON(result, metadataPath); err != nil {
		return nil, err
	}

	return result, nil
}

// enrichFromPage fills missing episode metadata from the episode page. Feeds
// frequently ship empty or truncated descriptions; the page has the full
// show notes. Failures are logged, never fatal.
func (r *Runner) enrichFromPage(ctx context.Context, episode *domain.Episode) {
	if episode.PageURL == "" || (episode.ShowNotes != "" && episode.Title != "") {
		return
	}

	pageHTML, _, err := r.fetchURL(ctx, episode.PageURL)
	if err != nil {
		log.Printf("Runner: could not fetch episode page for %q: %v", episode.Title, err)
		return
	}

	enrichFromHTML(episode, string(pageHTML))
}

// enrichFromHTML fills missing episode fields from already-fetched page HTML
func enrichFromHTML(episode *domain.Episode, pageHTML string) {
	if episode.ShowNotes == "" {
		if notes, err := content.ExtractShowNotes(pageHTML); err == nil {
			episode.ShowNotes = notes
		}
	}
	if episode.Title == "" {
		if title, err := content.ExtractEpisodeTitle(pageHTML); err == nil {
			episode.Title = title
		}
	}
}

// fetchURL fetches a URL with the browser client profile
func (r *Runner) fetchURL(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := r.pageClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// reportPathFor places the report next to the audio file:
// "<stem>_poker_hands.md"
func reportPathFor(audioPath string) string {
	stem := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	return stem + "_poker_hands.md"
}
