package postgres

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ConversionRepository struct {
	pool *pgxpool.Pool
}

func (r *ConversionRepository) Save(ctx context.Context, c domain.Conversion) (domain.Conversion, error) {
	const q = `
		insert into conversions(from_currency, to_currency, amount, rate, result, ip_address)
		values ($1, $2, $3::numeric, $4::numeric, $5::numeric, nullif($6::text, ''))
		returning id, created_at;
	`

	err := r.pool.QueryRow(ctx, q,
		c.From.String(), c.To.String(),
		c.Amount.String(), c.Rate.String(), c.Result.String(),
		c.ClientIP,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("failed to insert conversion %s/%s: %w", c.From, c.To, err)
	}
	return c, nil
}

// Recent returns up to limit conversions, newest first.
func (r *ConversionRepository) Recent(ctx context.Context, limit int) ([]domain.Conversion, error) {
	const q = `
		select id, from_currency, to_currency, amount::text, rate::text, result::text,
		       coalesce(ip_address, ''), created_at
		from conversions
		order by created_at desc, id desc
		limit $1;
	`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	conversions := make([]domain.Conversion, 0, limit)
	for rows.Next() {
		var (
			c                    domain.Conversion
			from, to             string
			amount, rate, result string
		)
		if err = rows.Scan(&c.ID, &from, &to, &amount, &rate, &result, &c.ClientIP, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		c.From, c.To = domain.CurrencyCode(from), domain.CurrencyCode(to)
		if c.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
		}
		if c.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("failed to parse rate %q: %w", rate, err)
		}
		if c.Result, err = decimal.NewFromString(result); err != nil {
			return nil, fmt.Errorf("failed to parse result %q: %w", result, err)
		}
		conversions = append(conversions, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversions: %w", err)
	}
	return conversions, nil
}

func NewConversionRepository(pool *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{pool: pool}
}
