package feed

import (
	"context"
	"strings"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// EpisodeFilter defines the interface for episode filtering
type EpisodeFilter interface {
	ShouldKeep(ctx context.Context, episode domain.Episode) (bool, error)
}

// AlreadyProcessedFilter filters out episodes whose GUID exists in the provided set
type AlreadyProcessedFilter struct {
	processedGUIDs map[string]bool
}

// NewAlreadyProcessedFilter creates a new already-processed filter
func NewAlreadyProcessedFilter(processedGUIDs map[string]bool) *AlreadyProcessedFilter {
	return &AlreadyProcessedFilter{
		processedGUIDs: processedGUIDs,
	}
}

// ShouldKeep returns false if the episode GUID is already in the processed set
func (f *AlreadyProcessedFilter) ShouldKeep(ctx context.Context, episode domain.Episode) (bool, error) {
	return !f.processedGUIDs[episode.GUID], nil
}

// TitleKeywordFilter keeps only episodes whose title contains the keyword
// (case-insensitive). Useful for feeds that mix strategy episodes with
// interviews or news.
type TitleKeywordFilter struct {
	keyword string
}

// NewTitleKeywordFilter creates a new title keyword filter
func NewTitleKeywordFilter(keyword string) *TitleKeywordFilter {
	return &TitleKeywordFilter{
		keyword: strings.ToLower(keyword),
	}
}

// ShouldKeep returns true if the episode title contains the keyword
func (f *TitleKeywordFilter) ShouldKeep(ctx context.Context, episode domain.Episode) (bool, error) {
	if f.keyword == "" {
		return true, nil
	}
	return strings.Contains(strings.ToLower(episode.Title), f.keyword), nil
}

// ApplyFilters returns the episodes that pass every filter
func ApplyFilters(ctx context.Context, episodes []domain.Episode, filters []EpisodeFilter) ([]domain.Episode, error) {
	if len(filters) == 0 {
		return episodes, nil
	}

	kept := make([]domain.Episode, 0, len(episodes))
	for _, episode := range episodes {
		keep, err := shouldKeepEpisode(ctx, episode, filters)
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, episode)
		}
	}
	return kept, nil
}

// shouldKeepEpisode checks an episode against all filters
func shouldKeepEpisode(ctx context.Context, episode domain.Episode, filters []EpisodeFilter) (bool, error) {
	for _, filter := range filters {
		keep, err := filter.ShouldKeep(ctx, episode)
		if err != nil {
			return false, err
		}
		if !keep {
			return false, nil
		}
	}
	return true, nil
}
