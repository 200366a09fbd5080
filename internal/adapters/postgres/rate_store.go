package postgres

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RateStore keeps every fetched rate. Rows are never updated, the newest
// fetched_at of a pair is its current rate.
type RateStore struct {
	pool *pgxpool.Pool
}

func (s *RateStore) Insert(ctx context.Context, rec domain.RateRecord) error {
	const q = `
		insert into exchange_rates(base_currency, target_currency, rate, fetched_at)
		values ($1, $2, $3::numeric, $4);
	`

	if _, err := s.pool.Exec(ctx, q, rec.Base.String(), rec.Target.String(), rec.Rate.String(), rec.FetchedAt); err != nil {
		return fmt.Errorf("failed to insert rate %s/%s: %w", rec.Base, rec.Target, err)
	}
	return nil
}

// LatestFor returns nil without error when the pair was never stored.
func (s *RateStore) LatestFor(ctx context.Context, pair domain.RatePair) (*domain.RateRecord, error) {
	const q = `
		select rate::text, fetched_at
		from exchange_rates
		where base_currency = $1 and target_currency = $2
		order by fetched_at desc
		limit 1;
	`

	var raw string
	rec := domain.RateRecord{Base: pair.Base, Target: pair.Target}
	if err := s.pool.QueryRow(ctx, q, pair.Base.String(), pair.Target.String()).Scan(&raw, &rec.FetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select latest rate for %s: %w", pair.Key(), err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored rate %q: %w", raw, err)
	}
	rec.Rate = rate
	return &rec, nil
}

// HistoryFor returns the records of pair fetched at or after since, oldest first.
func (s *RateStore) HistoryFor(ctx context.Context, pair domain.RatePair, since time.Time) ([]domain.RateRecord, error) {
	const q = `
		select rate::text, fetched_at
		from exchange_rates
		where base_currency = $1 and target_currency = $2 and fetched_at >= $3
		order by fetched_at asc;
	`

	rows, err := s.pool.Query(ctx, q, pair.Base.String(), pair.Target.String(), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history for %s: %w", pair.Key(), err)
	}
	defer rows.Close()

	history := make([]domain.RateRecord, 0, 32)
	for rows.Next() {
		var raw string
		rec := domain.RateRecord{Base: pair.Base, Target: pair.Target}
		if err = rows.Scan(&raw, &rec.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate history row: %w", err)
		}
		if rec.Rate, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("failed to parse stored rate %q: %w", raw, err)
		}
		history = append(history, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate history: %w", err)
	}
	return history, nil
}

func (s *RateStore) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `select count(*) from exchange_rates;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rates: %w", err)
	}
	return n, nil
}

func (s *RateStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `select count(*) from exchange_rates where fetched_at >= $1;`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rates since %s: %w", since.Format(time.RFC3339), err)
	}
	return n, nil
}

// Oldest is nil on an empty store.
func (s *RateStore) Oldest(ctx context.Context) (*time.Time, error) {
	return s.boundary(ctx, `select min(fetched_at) from exchange_rates;`)
}

// Newest is nil on an empty store.
func (s *RateStore) Newest(ctx context.Context) (*time.Time, error) {
	return s.boundary(ctx, `select max(fetched_at) from exchange_rates;`)
}

func (s *RateStore) boundary(ctx context.Context, q string) (*time.Time, error) {
	var ts *time.Time
	if err := s.pool.QueryRow(ctx, q).Scan(&ts); err != nil {
		return nil, fmt.Errorf("failed to select fetch boundary: %w", err)
	}
	return ts, nil
}

func NewRateStore(pool *pgxpool.Pool) *RateStore {
	return &RateStore{pool: pool}
}
