package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

type crosswordRepository struct {
	db *sql.DB
}

func NewCrosswordRepository(db *sql.DB) ports.CrosswordRepository {
	return &crosswordRepository{
		db: db,
	}
}

const crosswordColumns = `
	published_date, date_string, day_name, author, editor, poll_exists, poll_url,
	votes, excellent, good, average, poor, terrible, no_vote,
	excellent_percentage, good_percentage, average_percentage, poor_percentage, terrible_percentage,
	average_rating`

func (r *crosswordRepository) Create(ctx context.Context, c *domain.Crossword) error {
	if err := c.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO crosswords (` + crosswordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (published_date) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		c.PublishedDate, c.DateString, c.DayName, c.Author, c.Editor, c.PollExists, c.PollURL,
		c.Votes, c.Excellent, c.Good, c.Average, c.Poor, c.Terrible, c.NoVote,
		c.ExcellentPercentage, c.GoodPercentage, c.AveragePercentage, c.PoorPercentage, c.TerriblePercentage,
		c.AverageRating,
	)
	if err != nil {
		return fmt.Errorf("failed to insert crossword: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read inserted rows: %w", err)
	}
	if inserted == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCrosswordExists, c.DateString)
	}

	return nil
}

func (r *crosswordRepository) ListPublishedDates(ctx context.Context, from, to int64) ([]int64, error) {
	query := `
		SELECT published_date
		FROM crosswords
		WHERE published_date >= $1 AND published_date <= $2
		ORDER BY published_date
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list published dates: %w", err)
	}
	defer rows.Close()

	var dates []int64
	for rows.Next() {
		var d int64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan published date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating published dates: %w", err)
	}
	return dates, nil
}

func (r *crosswordRepository) ListAll(ctx context.Context) ([]*domain.Crossword, error) {
	query := `
		SELECT ` + crosswordColumns + `
		FROM crosswords
		ORDER BY published_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list crosswords: %w", err)
	}
	defer rows.Close()

	var crosswords []*domain.Crossword
	for rows.Next() {
		var c domain.Crossword
		if err := rows.Scan(
			&c.PublishedDate, &c.DateString, &c.DayName, &c.Author, &c.Editor, &c.PollExists, &c.PollURL,
			&c.Votes, &c.Excellent, &c.Good, &c.Average, &c.Poor, &c.Terrible, &c.NoVote,
			&c.ExcellentPercentage, &c.GoodPercentage, &c.AveragePercentage, &c.PoorPercentage, &c.TerriblePercentage,
			&c.AverageRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan crossword: %w", err)
		}
		crosswords = append(crosswords, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crosswords: %w", err)
	}
	return crosswords, nil
}

func (r *crosswordRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
