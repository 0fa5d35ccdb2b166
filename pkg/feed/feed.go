package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// Fetcher parses podcast RSS/Atom feeds into episodes with audio enclosures
type Fetcher struct {
	feedParser *gofeed.Parser
}

// NewFetcher creates a new feed fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		feedParser: gofeed.NewParser(),
	}
}

// Fetch fetches and parses the feed at feedURL and returns the episodes that
// carry an audio enclosure. Items without audio are skipped.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.Episode, error) {
	feed, err := f.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	episodes := make([]domain.Episode, 0, len(feed.Items))
	for _, item := range feed.Items {
		audioURL := audioEnclosureURL(item)
		if audioURL == "" {
			continue
		}

		episodes = append(episodes, domain.Episode{
			GUID:      episodeGUID(item),
			Title:     item.Title,
			Published: publishedDate(item),
			AudioURL:  audioURL,
			PageURL:   item.Link,
			ShowNotes: StripHTML(item.Description),
		})
	}

	if len(episodes) == 0 {
		return nil, fmt.Errorf("no episodes with audio enclosures found in feed")
	}

	return episodes, nil
}

// audioEnclosureURL returns the URL of the first audio/* enclosure, or ""
func audioEnclosureURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.HasPrefix(strings.ToLower(enc.Type), "audio/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

// episodeGUID returns the feed GUID, falling back to the title
func episodeGUID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Title
}

func publishedDate(item *gofeed.Item) string {
	if item.Published != "" {
		return item.Published
	}
	return "Unknown"
}

// Window applies skip-then-take to an episode list: drop the first skip
// episodes, then keep at most max. skip < 0 is treated as 0; max <= 0 means
// no limit.
func Window(episodes []domain.Episode, skip, max int) []domain.Episode {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(episodes) {
		return nil
	}
	episodes = episodes[skip:]
	if max > 0 && len(episodes) > max {
		episodes = episodes[:max]
	}
	return episodes
}

// StripHTML reduces an HTML fragment (feed item descriptions are usually
// HTML) to normalized plain text. Returns the input unchanged when it does
// not parse as HTML.
func StripHTML(html string) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	// Collapse runs of whitespace into single spaces for a compact string
	return strings.Join(strings.Fields(doc.Text()), " ")
}
