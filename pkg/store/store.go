package store

import (
	"context"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// Store persists episode results and answers which episodes were already
// processed. Runs without a store keep everything on the filesystem only.
type Store interface {
	// SaveResult upserts an episode result, keyed by episode GUID
	SaveResult(ctx context.Context, result *domain.EpisodeResult) error

	// ProcessedGUIDs returns the set of episode GUIDs already processed
	ProcessedGUIDs(ctx context.Context) (map[string]bool, error)

	// Close releases the underlying connection
	Close(ctx context.Context) error
}
