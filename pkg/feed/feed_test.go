package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

const podcastRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Poker Podcast</title>
    <item>
      <title>Episode 42: Big Bluffs</title>
      <guid>tpp-ep-42</guid>
      <pubDate>Mon, 03 Mar 2025 10:00:00 +0000</pubDate>
      <link>https://example.com/episodes/42</link>
      <description><![CDATA[<p>We review <b>three hands</b> from the final table.</p>]]></description>
      <enclosure url="https://cdn.example.com/audio/ep42.mp3" length="1024" type="audio/mpeg"/>
    </item>
    <item>
      <title>Episode 41: Interview</title>
      <guid>tpp-ep-41</guid>
      <link>https://example.com/episodes/41</link>
      <enclosure url="https://cdn.example.com/audio/ep41.m4a" length="2048" type="audio/mp4"/>
    </item>
    <item>
      <title>Blog post, no audio</title>
      <guid>tpp-post-1</guid>
      <link>https://example.com/blog/1</link>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetch(t *testing.T) {
	server := newFeedServer(t, podcastRSS)
	defer server.Close()

	fetcher := NewFetcher()
	episodes, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// The item without an audio enclosure must be skipped
	if len(episodes) != 2 {
		t.Fatalf("Expected 2 episodes with audio, got %d", len(episodes))
	}

	first := episodes[0]
	if first.GUID != "tpp-ep-42" {
		t.Errorf("Expected GUID tpp-ep-42, got %q", first.GUID)
	}
	if first.Title != "Episode 42: Big Bluffs" {
		t.Errorf("Unexpected title: %q", first.Title)
	}
	if first.AudioURL != "https://cdn.example.com/audio/ep42.mp3" {
		t.Errorf("Unexpected audio URL: %q", first.AudioURL)
	}
	if first.PageURL != "https://example.com/episodes/42" {
		t.Errorf("Unexpected page URL: %q", first.PageURL)
	}
	if first.Published != "Mon, 03 Mar 2025 10:00:00 +0000" {
		t.Errorf("Unexpected published date: %q", first.Published)
	}
	if first.ShowNotes != "We review three hands from the final table." {
		t.Errorf("Expected stripped show notes, got %q", first.ShowNotes)
	}

	// Missing pubDate falls back to "Unknown"
	if episodes[1].Published != "Unknown" {
		t.Errorf("Expected Unknown published date, got %q", episodes[1].Published)
	}
}

func TestFetch_EmptyFeed(t *testing.T) {
	empty := `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`
	server := newFeedServer(t, empty)
	defer server.Close()

	fetcher := NewFetcher()
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for feed with no items")
	}
}

func TestFetch_NoAudioEnclosures(t *testing.T) {
	noAudio := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Text Only</title>
  <item><title>Post</title><guid>p1</guid><link>https://example.com/p1</link></item>
</channel></rss>`
	server := newFeedServer(t, noAudio)
	defer server.Close()

	fetcher := NewFetcher()
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for feed without audio enclosures")
	}
}

func TestFetch_BadURL(t *testing.T) {
	fetcher := NewFetcher()
	if _, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/feed.xml"); err == nil {
		t.Fatal("Expected error for unreachable feed URL")
	}
}

func TestWindow(t *testing.T) {
	episodes := []domain.Episode{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"},
	}

	tests := []struct {
		name string
		skip int
		max  int
		want []string
	}{
		{"take first", 0, 1, []string{"a"}},
		{"skip then take", 1, 2, []string{"b", "c"}},
		{"no limit", 0, 0, []string{"a", "b", "c", "d"}},
		{"negative skip", -3, 2, []string{"a", "b"}},
		{"skip past end", 10, 2, nil},
		{"max beyond end", 2, 100, []string{"c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(episodes, tt.skip, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d episodes, got %d", len(tt.want), len(got))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("Episode %d: expected %q, got %q", i, title, got[i].Title)
				}
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tags removed", "<p>Hello <b>world</b></p>", "Hello world"},
		{"whitespace collapsed", "  one\n\n two\tthree  ", "one two three"},
		{"plain text untouched", "just text", "just text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
