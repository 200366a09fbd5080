package history

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"strings"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// Service records finished conversions and keeps per-session favorite pairs.
type Service struct {
	conversions adapters.ConversionRepository
	favorites   adapters.FavoriteRepository
}

func (s *Service) RecordConversion(ctx context.Context, res domain.ConversionResult, clientIP string) (domain.Conversion, error) {
	saved, err := s.conversions.Save(ctx, domain.Conversion{
		From:     res.From,
		To:       res.To,
		Amount:   res.Amount,
		Rate:     res.Rate,
		Result:   res.Result,
		ClientIP: clientIP,
	})
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return saved, nil
}

// RecentConversions returns the newest conversions. limit 0 means DefaultRecentLimit.
func (s *Service) RecentConversions(ctx context.Context, limit int) ([]domain.Conversion, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 0 || limit > MaxRecentLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d, got %d", domain.ErrInvalidInput, MaxRecentLimit, limit)
	}
	recent, err := s.conversions.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return recent, nil
}

func (s *Service) AddFavorite(ctx context.Context, sessionID, from, to string) (domain.FavoritePair, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.FavoritePair{}, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	pair, err := domain.NewRatePair(from, to)
	if err != nil {
		return domain.FavoritePair{}, err
	}
	if pair.Base == pair.Target {
		return domain.FavoritePair{}, fmt.Errorf("%w: favorite pair needs two different currencies", domain.ErrInvalidInput)
	}

	fav, err := s.favorites.AddOrIncrement(ctx, sessionID, pair)
	if err != nil {
		return domain.FavoritePair{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return fav, nil
}

// ListFavorites returns the favorites of the session, most used first.
func (s *Service) ListFavorites(ctx context.Context, sessionID string) ([]domain.FavoritePair, error) {
	if strings.TrimSpace(sessionID) == "" {
		return []domain.FavoritePair{}, nil
	}
	favorites, err := s.favorites.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return favorites, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: favorite id must be positive", domain.ErrInvalidInput)
	}
	err := s.favorites.Delete(ctx, id)
	if err == nil || errors.Is(err, domain.ErrFavoriteNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func NewService(conversions adapters.ConversionRepository, favorites adapters.FavoriteRepository) *Service {
	return &Service{conversions: conversions, favorites: favorites}
}
