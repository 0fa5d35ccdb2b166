package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/httpclient"
)

var (
	ErrEmptyAudioURL = errors.New("audio URL is empty")
	ErrEmptyBody     = errors.New("downloaded audio is empty")
)

// Downloader fetches episode audio files to disk.
type Downloader struct {
	client *httpclient.HTTPClient
}

// NewDownloader creates a downloader using the podcast HTTP client profile.
// Full-length episodes can take a while, so the timeout is generous.
func NewDownloader() *Downloader {
	client := httpclient.NewClient(httpclient.PodcastClient)
	client.SetTimeout(15 * time.Minute)
	return &Downloader{client: client}
}

// NewDownloaderWithClient creates a downloader with a custom HTTP client (used in tests).
func NewDownloaderWithClient(client *httpclient.HTTPClient) *Downloader {
	return &Downloader{client: client}
}

// Fetch downloads the audio at audioURL into outputDir and returns the local
// path. If the target file already exists and is non-empty, the download is
// skipped. The body is streamed to a ".part" file first and renamed on
// success, so a failed download never leaves a truncated audio file behind.
func (d *Downloader) Fetch(ctx context.Context, audioURL, outputDir string) (string, error) {
	if strings.TrimSpace(audioURL) == "" {
		return "", ErrEmptyAudioURL
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	outputPath := filepath.Join(outputDir, Filename(audioURL))

	if info, err := os.Stat(outputPath); err == nil && info.Size() > 0 {
		log.Printf("Downloader: audio already exists: %s", outputPath)
		return outputPath, nil
	}

	log.Printf("Downloader: downloading %s", audioURL)

	if err := d.fetchToFile(ctx, audioURL, outputPath); err != nil {
		return "", err
	}

	log.Printf("Downloader: saved %s", outputPath)
	return outputPath, nil
}

// fetchToFile streams the response body to outputPath via a temporary ".part" file.
func (d *Downloader) fetchToFile(ctx context.Context, audioURL, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	partPath := outputPath + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	closeErr := out.Close()

	if err == nil {
		err = closeErr
	}
	if err == nil && written == 0 {
		err = ErrEmptyBody
	}
	if err != nil {
		// Clean up the partial download
		_ = os.Remove(partPath)
		return fmt.Errorf("write audio file: %w", err)
	}

	if err := os.Rename(partPath, outputPath); err != nil {
		_ = os.Remove(partPath)
		return fmt.Errorf("finalize audio file: %w", err)
	}

	return nil
}

// audioExtensions are the enclosure file extensions we accept as-is.
var audioExtensions = map[string]bool{
	".mp3": true,
	".m4a": true,
	".wav": true,
	".ogg": true,
	".aac": true,
}

// Filename derives a local filename from the audio URL path. When the path
// does not end in a known audio extension (tracking redirects often hide the
// real name), a timestamped fallback name is used.
func Filename(audioURL string) string {
	parsed, err := url.Parse(audioURL)
	if err == nil {
		name := path.Base(parsed.Path)
		if name != "" && name != "." && name != "/" && audioExtensions[strings.ToLower(path.Ext(name))] {
			return name
		}
	}
	return fmt.Sprintf("episode_%s.mp3", time.Now().Format("20060102_150405"))
}
