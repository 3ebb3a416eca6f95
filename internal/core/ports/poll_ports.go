package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
)

// ForumClient talks to the discussion forum hosting the daily polls.
type ForumClient interface {
	// AccessToken exchanges the service credentials for a bearer token.
	AccessToken(ctx context.Context) (string, error)
	// SearchThreads runs a relevance-ranked search within the community and
	// returns results in the order the forum provided them.
	SearchThreads(ctx context.Context, accessToken, query string) ([]domain.Thread, error)
}

// MetadataFetcher provides the descriptive fields of a day's puzzle.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, day time.Time) (domain.PuzzleMetadata, error)
}
