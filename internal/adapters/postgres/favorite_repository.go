package postgres

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

// AddOrIncrement creates the favorite with usage_count 1 or bumps the counter of an existing one.
func (r *FavoriteRepository) AddOrIncrement(ctx context.Context, sessionID string, pair domain.RatePair) (domain.FavoritePair, error) {
	const q = `
		insert into favorite_pairs(from_currency, to_currency, session_id, usage_count)
		values ($1, $2, $3, 1)
		on conflict (from_currency, to_currency, session_id) do update
		  set usage_count = favorite_pairs.usage_count + 1, updated_at = now()
		returning id, usage_count, created_at, updated_at;
	`

	fav := domain.FavoritePair{From: pair.Base, To: pair.Target, SessionID: sessionID}
	err := r.pool.QueryRow(ctx, q, pair.Base.String(), pair.Target.String(), sessionID).
		Scan(&fav.ID, &fav.UsageCount, &fav.CreatedAt, &fav.UpdatedAt)
	if err != nil {
		return domain.FavoritePair{}, fmt.Errorf("failed to upsert favorite %s for session %q: %w", pair.Key(), sessionID, err)
	}
	return fav, nil
}

func (r *FavoriteRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.FavoritePair, error) {
	const q = `
		select id, from_currency, to_currency, usage_count, created_at, updated_at
		from favorite_pairs
		where session_id = $1
		order by usage_count desc, updated_at desc;
	`

	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]domain.FavoritePair, 0, 16)
	for rows.Next() {
		var (
			fav      = domain.FavoritePair{SessionID: sessionID}
			from, to string
		)
		if err = rows.Scan(&fav.ID, &from, &to, &fav.UsageCount, &fav.CreatedAt, &fav.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		fav.From, fav.To = domain.CurrencyCode(from), domain.CurrencyCode(to)
		favorites = append(favorites, fav)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}
	return favorites, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `delete from favorite_pairs where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}
