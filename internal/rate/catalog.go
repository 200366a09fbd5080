package rate

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"time"
)

var currencySymbols = map[domain.CurrencyCode]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"CNY": "¥",
	"SEK": "kr",
	"NZD": "NZ$",
	"KRW": "₩",
	"SGD": "S$",
	"HKD": "HK$",
	"NOK": "kr",
	"MXN": "$",
	"BRL": "R$",
	"RUB": "₽",
	"ZAR": "R",
	"TRY": "₺",
}

// SymbolFor returns the display glyph of code, empty for codes outside the table.
func SymbolFor(code domain.CurrencyCode) string {
	return currencySymbols[code]
}

// Catalog keeps the list of supported currencies in sync with the provider.
type Catalog struct {
	client adapters.RateClient
	repo   adapters.CurrencyRepository
	cache  adapters.CatalogCache
	ttl    time.Duration
}

// PopulateCurrencyCatalog upserts every provider code as an active currency and
// drops the cached listing. Running it twice with the same data only moves updated_at.
func (c *Catalog) PopulateCurrencyCatalog(ctx context.Context) (int, error) {
	codes, err := c.client.GetSupportedCodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	seen := make(map[domain.CurrencyCode]struct{}, len(codes))
	currencies := make([]domain.Currency, 0, len(codes))
	for _, sc := range codes {
		code, parseErr := domain.ParseCurrencyCode(sc.Code)
		if parseErr != nil {
			return 0, fmt.Errorf("%w: provider returned bad code: %w", domain.ErrProviderUnavailable, parseErr)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		currencies = append(currencies, domain.Currency{
			Code:     code,
			Name:     sc.Name,
			Symbol:   SymbolFor(code),
			IsActive: true,
		})
	}

	n, err := c.repo.UpsertActive(ctx, currencies)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	c.cache.InvalidateCurrencies()
	return n, nil
}

func (c *Catalog) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	if currencies, ok := c.cache.GetCurrencies(); ok {
		return currencies, nil
	}

	currencies, err := c.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	c.cache.SetCurrencies(currencies, c.ttl)
	return currencies, nil
}

func NewCatalog(client adapters.RateClient, repo adapters.CurrencyRepository, cache adapters.CatalogCache, ttl time.Duration) *Catalog {
	return &Catalog{client: client, repo: repo, cache: cache, ttl: ttl}
}
