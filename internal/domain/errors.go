package domain

import "errors"

// Error kinds surfaced by the rate core. Causes are wrapped next to the kind,
// so both errors.Is(err, ErrProviderUnavailable) and errors.Is(err, cause) hold.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrProviderUnavailable = errors.New("rate provider unavailable")
	ErrStoreUnavailable    = errors.New("rate store unavailable")
	ErrRateUnavailable     = errors.New("rate unavailable")
	ErrRateMissing         = errors.New("rate missing in provider snapshot")
)

var (
	ErrRateNotFound     = errors.New("rate not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
