package fx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fx_payments/internal/domain/entities"
	"fx_payments/internal/usecase/interfaces"

	"github.com/goccy/go-json"
)

// GetQuotePath is the Twirp route of the provider's GetQuote method.
const GetQuotePath = "/twirp/payments.v1.FXService/GetQuote"

const (
	defaultTimeout     = 3 * time.Second
	defaultMaxAttempts = 3
	defaultBackoff     = 200 * time.Millisecond
	defaultMaxBackoff  = time.Second

	// Provider answers are tiny; anything larger is not a quote.
	maxResponseBytes = 64 << 10
)

var (
	ErrMissingBaseURL  = errors.New("missing FX base url")
	ErrMissingCurrency = errors.New("source_currency and dest_currency are required")
)

// Options configures a TwirpFXClient. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration
	// IncludeAmount sends the notional amount for providers that price by size.
	IncludeAmount bool
	HTTPClient    *http.Client
}

// TwirpFXClient fetches FX quotes over the provider's Twirp JSON protocol.
//
// Each attempt gets its own timeout. Transport and provider failures are
// retried up to MaxAttempts with a linear, capped backoff; invalid responses
// are returned immediately.
type TwirpFXClient struct {
	httpClient    *http.Client
	endpoint      string
	timeout       time.Duration
	maxAttempts   int
	backoff       time.Duration
	maxBackoff    time.Duration
	includeAmount bool
}

var _ interfaces.IRateQuoteClient = (*TwirpFXClient)(nil)

type getQuoteRequest struct {
	SourceCurrency string   `json:"source_currency"`
	TargetCurrency string   `json:"target_currency"`
	Amount         *float64 `json:"amount,omitempty"`
}

type getQuoteResponse struct {
	ExchangeRate      *float64 `json:"exchange_rate"`
	ExchangeRateCamel *float64 `json:"exchangeRate"`
}

type twirpError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func NewTwirpFXClient(opts Options) (*TwirpFXClient, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid FX base url %q", opts.BaseURL)
	}

	c := &TwirpFXClient{
		httpClient:    opts.HTTPClient,
		endpoint:      base + GetQuotePath,
		timeout:       opts.Timeout,
		maxAttempts:   opts.MaxAttempts,
		backoff:       opts.Backoff,
		maxBackoff:    opts.MaxBackoff,
		includeAmount: opts.IncludeAmount,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     30 * time.Second,
			},
		}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.backoff < 0 {
		c.backoff = 0
	} else if c.backoff == 0 {
		c.backoff = defaultBackoff
	}
	if c.maxBackoff <= 0 {
		c.maxBackoff = defaultMaxBackoff
	}

	log.Printf("[fx][client] initialized endpoint=%s timeout=%s max_attempts=%d backoff=%s max_backoff=%s", c.endpoint, c.timeout, c.maxAttempts, c.backoff, c.maxBackoff)
	return c, nil
}

// GetQuote returns the rate for the pair, or a *entities.QuoteError.
func (c *TwirpFXClient) GetQuote(ctx context.Context, sourceCurrency, destinationCurrency string, amount float64) (entities.RateQuote, error) {
	if strings.TrimSpace(sourceCurrency) == "" || strings.TrimSpace(destinationCurrency) == "" {
		return entities.RateQuote{}, ErrMissingCurrency
	}

	reqBody := getQuoteRequest{SourceCurrency: sourceCurrency, TargetCurrency: destinationCurrency}
	if c.includeAmount {
		reqBody.Amount = &amount
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return entities.RateQuote{}, &entities.QuoteError{
			Kind:    entities.QuoteFailureTransport,
			Message: fmt.Sprintf("failed to encode FX request: %v", err),
			Err:     err,
		}
	}

	var last *entities.QuoteError
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		rate, latency, qe := c.do(ctx, payload)
		if qe == nil {
			log.Printf("[fx][client] quote success pair=%s/%s attempt=%d rate=%v latency_ms=%d", sourceCurrency, destinationCurrency, attempt, rate, latency.Milliseconds())
			return entities.RateQuote{Rate: rate, Latency: latency}, nil
		}

		qe.Attempts = attempt
		qe.Latency = latency
		last = qe
		log.Printf("[fx][client] quote attempt failed pair=%s/%s attempt=%d/%d kind=%s latency_ms=%d err=%v", sourceCurrency, destinationCurrency, attempt, c.maxAttempts, qe.Kind, latency.Milliseconds(), qe)

		if !qe.Retryable() || attempt == c.maxAttempts {
			break
		}
		if err := sleepContext(ctx, c.backoffFor(attempt)); err != nil {
			log.Printf("[fx][client] retry aborted pair=%s/%s attempt=%d err=%v", sourceCurrency, destinationCurrency, attempt, err)
			break
		}
	}
	return entities.RateQuote{}, last
}

func (c *TwirpFXClient) do(ctx context.Context, payload []byte) (float64, time.Duration, *entities.QuoteError) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, 0, &entities.QuoteError{
			Kind:    entities.QuoteFailureTransport,
			Message: fmt.Sprintf("failed to build FX request: %v", err),
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, time.Since(start), c.transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	latency := time.Since(start)
	if err != nil {
		return 0, latency, c.transportError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, latency, providerError(resp.StatusCode, raw)
	}

	rate, qe := parseQuote(raw)
	return rate, latency, qe
}

func (c *TwirpFXClient) backoffFor(attempt int) time.Duration {
	d := c.backoff * time.Duration(attempt)
	if d > c.maxBackoff {
		return c.maxBackoff
	}
	return d
}

func (c *TwirpFXClient) transportError(err error) *entities.QuoteError {
	msg := fmt.Sprintf("FX service unreachable: %v", err)
	if errors.Is(err, context.DeadlineExceeded) {
		msg = fmt.Sprintf("FX service timed out after %s", c.timeout)
	}
	return &entities.QuoteError{Kind: entities.QuoteFailureTransport, Message: msg, Err: err}
}

func providerError(status int, body []byte) *entities.QuoteError {
	msg := fmt.Sprintf("FX service returned status %d", status)
	var te twirpError
	if len(body) > 0 && json.Unmarshal(body, &te) == nil && (te.Code != "" || te.Msg != "") {
		msg = fmt.Sprintf("%s: %s: %s", msg, te.Code, te.Msg)
	}
	return &entities.QuoteError{Kind: entities.QuoteFailureProvider, Message: msg, StatusCode: status}
}

func parseQuote(body []byte) (float64, *entities.QuoteError) {
	var out getQuoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, &entities.QuoteError{
			Kind:    entities.QuoteFailureInvalidResponse,
			Message: fmt.Sprintf("malformed FX response: %v", err),
			Err:     err,
		}
	}

	rate := out.ExchangeRate
	if rate == nil {
		rate = out.ExchangeRateCamel
	}
	if rate == nil {
		return 0, &entities.QuoteError{Kind: entities.QuoteFailureInvalidResponse, Message: "FX response missing exchange_rate"}
	}
	if math.IsNaN(*rate) || math.IsInf(*rate, 0) || *rate <= 0 {
		return 0, &entities.QuoteError{Kind: entities.QuoteFailureInvalidResponse, Message: fmt.Sprintf("Invalid exchange rate from FX: %v", *rate)}
	}
	return *rate, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
