package pipeline

import (
	"context"
	"log"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/feed"
)

// FeedSource produces episodes from a podcast RSS/Atom feed, applying
// episode filters and the skip/max window.
type FeedSource struct {
	fetcher *feed.Fetcher
	feedURL string
	filters []feed.EpisodeFilter
	skip    int
	max     int
}

// NewFeedSource creates a feed-backed episode source.
// skip drops the newest episodes first; max <= 0 means no limit.
func NewFeedSource(fetcher *feed.Fetcher, feedURL string, skip, max int, filters ...feed.EpisodeFilter) *FeedSource {
	return &FeedSource{
		fetcher: fetcher,
		feedURL: feedURL,
		filters: filters,
		skip:    skip,
		max:     max,
	}
}

// Episodes fetches the feed and returns the filtered, windowed episodes.
// Filters run before the window so an already-processed newest episode
// advances the window to the next unprocessed one instead of emptying it.
func (s *FeedSource) Episodes(ctx context.Context) ([]domain.Episode, error) {
	episodes, err := s.fetcher.Fetch(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}
	log.Printf("FeedSource: found %d episodes with audio in %s", len(episodes), s.feedURL)

	filtered, err := feed.ApplyFilters(ctx, episodes, s.filters)
	if err != nil {
		return nil, err
	}
	if len(filtered) < len(episodes) {
		log.Printf("FeedSource: filters dropped %d episodes", len(episodes)-len(filtered))
	}

	return feed.Window(filtered, s.skip, s.max), nil
}

// StaticSource yields a fixed episode list. Used for single-episode runs and tests.
type StaticSource struct {
	episodes []domain.Episode
}

// NewStaticSource creates a source over a fixed episode list
func NewStaticSource(episodes []domain.Episode) *StaticSource {
	return &StaticSource{episodes: episodes}
}

// Episodes returns the fixed episode list
func (s *StaticSource) Episodes(ctx context.Context) ([]domain.Episode, error) {
	return s.episodes, nil
}
