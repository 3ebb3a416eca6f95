package services

import (
	"context"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

type crosswordService struct {
	repo ports.CrosswordRepository
}

func NewCrosswordService(repo ports.CrosswordRepository) ports.CrosswordService {
	return &crosswordService{
		repo: repo,
	}
}

func (s *crosswordService) ListCrosswords(ctx context.Context) ([]*domain.Crossword, error) {
	crosswords, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if crosswords == nil {
		crosswords = []*domain.Crossword{}
	}
	return crosswords, nil
}

func (s *crosswordService) Healthy(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
