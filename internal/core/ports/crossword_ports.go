package ports

import (
	"context"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
)

// CrosswordRepository is the archive of poll records, one per published day.
type CrosswordRepository interface {
	// Create inserts a record atomically. It returns domain.ErrCrosswordExists
	// and writes nothing when a record with the same published date exists.
	Create(ctx context.Context, crossword *domain.Crossword) error
	// ListPublishedDates returns the stored keys within [from, to].
	ListPublishedDates(ctx context.Context, from, to int64) ([]int64, error)
	// ListAll returns every record, newest published date first.
	ListAll(ctx context.Context) ([]*domain.Crossword, error)
	Ping(ctx context.Context) error
}

type CrosswordService interface {
	ListCrosswords(ctx context.Context) ([]*domain.Crossword, error)
	Healthy(ctx context.Context) error
}
