package interfaces

import (
	"context"
	"fx_payments/internal/domain/entities"
)

// IRateQuoteClient abstracts the external FX provider.
//
// On failure the returned error is a *entities.QuoteError carrying the
// failure classification; retries happen inside the implementation.
type IRateQuoteClient interface {
	GetQuote(ctx context.Context, sourceCurrency, destinationCurrency string, amount float64) (entities.RateQuote, error)
}
