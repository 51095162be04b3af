package entities

import (
	"fmt"
	"time"
)

// RateQuote is an exchange rate obtained for a single processing attempt.
type RateQuote struct {
	Rate    float64
	Latency time.Duration
}

// QuoteFailureKind classifies why a quote could not be obtained.
type QuoteFailureKind string

const (
	// QuoteFailureTransport covers connection errors and timeouts.
	QuoteFailureTransport QuoteFailureKind = "transport"
	// QuoteFailureProvider covers non-2xx answers from the provider.
	QuoteFailureProvider QuoteFailureKind = "provider"
	// QuoteFailureInvalidResponse covers malformed payloads and unusable rates.
	QuoteFailureInvalidResponse QuoteFailureKind = "invalid_response"
)

// QuoteError is the failure outcome of a quote lookup.
type QuoteError struct {
	Kind       QuoteFailureKind
	Message    string
	StatusCode int
	Attempts   int
	Latency    time.Duration
	Err        error
}

func (e *QuoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("fx quote failed (%s)", e.Kind)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

func (e *QuoteError) Retryable() bool {
	return e.Kind == QuoteFailureTransport || e.Kind == QuoteFailureProvider
}
