package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

type currencyRow struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// UpsertActive writes all currencies in one statement and marks them active.
// Codes must be unique within the batch.
func (r *CurrencyRepository) UpsertActive(ctx context.Context, currencies []domain.Currency) (int, error) {
	if len(currencies) == 0 {
		return 0, nil
	}
	payload := make([]currencyRow, 0, len(currencies))
	for _, c := range currencies {
		payload = append(payload, currencyRow{Code: c.Code.String(), Name: c.Name, Symbol: c.Symbol})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal currencies: %w", err)
	}

	const q = `
		insert into currencies(code, name, symbol, is_active, updated_at)
		select r.code, r.name, r.symbol, true, now()
		from json_to_recordset($1::json) as r(code text, name text, symbol text)
		on conflict (code) do update
		  set name = excluded.name, symbol = excluded.symbol, is_active = true, updated_at = now();
	`

	tag, err := r.pool.Exec(ctx, q, json.RawMessage(payloadJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert currencies: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *CurrencyRepository) ListActive(ctx context.Context) ([]domain.Currency, error) {
	const q = `
		select code, name, symbol, is_active, updated_at
		from currencies
		where is_active
		order by code;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0, 256)
	for rows.Next() {
		var (
			c    domain.Currency
			code string
		)
		if err = rows.Scan(&code, &c.Name, &c.Symbol, &c.IsActive, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		c.Code = domain.CurrencyCode(code)
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
