package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"fx_payments/internal/domain/entities"
	"fx_payments/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutDecimalPlaces is the precision of payout amounts. Rounding is
// half-up (away from zero), so 92.125 becomes 92.13.
const PayoutDecimalPlaces = 2

var (
	ErrInvalidSender           = errors.New("invalid sender")
	ErrInvalidReceiver         = errors.New("invalid receiver")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidCurrency         = errors.New("invalid currency")
	ErrInvalidPaymentID        = errors.New("invalid payment id")
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentStoreUnavailable = errors.New("payment store unavailable")
)

// IPaymentUseCase drives a payment from PENDING to a terminal state.
//
// CreatePayment returns a nil error for both SUCCEEDED and FAILED payments:
// an unobtainable quote is a business outcome recorded on the payment.
// Errors are reserved for invalid input and store faults.
type IPaymentUseCase interface {
	CreatePayment(ctx context.Context, intent entities.PaymentIntent) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo  interfaces.IPaymentRepository
	quote interfaces.IRateQuoteClient
	now   func() time.Time
	newID func() string
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, quote interfaces.IRateQuoteClient) *PaymentUseCase {
	return &PaymentUseCase{
		repo:  repo,
		quote: quote,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (u *PaymentUseCase) CreatePayment(ctx context.Context, intent entities.PaymentIntent) (entities.Payment, error) {
	intent, err := normalizeIntent(intent)
	if err != nil {
		log.Printf("[payment][usecase] invalid intent err=%v", err)
		return entities.Payment{}, err
	}
	if u.repo == nil {
		return entities.Payment{}, fmt.Errorf("%w: repository not configured", ErrPaymentStoreUnavailable)
	}
	if u.quote == nil {
		return entities.Payment{}, errors.New("rate quote client not configured")
	}

	pending := entities.NewPendingPayment(u.newID(), intent, u.now())
	if _, err := u.repo.Create(ctx, pending); err != nil {
		log.Printf("[payment][usecase] create pending failed payment_id=%s err=%v", pending.ID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentStoreUnavailable, err)
	}
	log.Printf("[payment][usecase] pending payment_id=%s pair=%s/%s amount=%.2f", pending.ID, intent.SourceCurrency, intent.DestinationCurrency, intent.Amount)

	quote, quoteErr := u.quote.GetQuote(ctx, intent.SourceCurrency, intent.DestinationCurrency, intent.Amount)
	if quoteErr == nil && !validRate(quote.Rate) {
		quoteErr = &entities.QuoteError{
			Kind:     entities.QuoteFailureInvalidResponse,
			Message:  fmt.Sprintf("Invalid exchange rate from FX: %v", quote.Rate),
			Attempts: 1,
			Latency:  quote.Latency,
		}
	}

	var payout float64
	if quoteErr == nil {
		payout = ComputePayout(intent.Amount, quote.Rate)
		if !validPayout(payout) {
			quoteErr = &entities.QuoteError{
				Kind:     entities.QuoteFailureInvalidResponse,
				Message:  fmt.Sprintf("payout out of range: %v %s at rate %v gives %v", intent.Amount, intent.SourceCurrency, quote.Rate, payout),
				Attempts: 1,
				Latency:  quote.Latency,
			}
		}
	}

	var mutate func(p *entities.Payment) error
	if quoteErr == nil {
		mutate = func(p *entities.Payment) error {
			return p.Succeed(quote.Rate, payout, quote.Latency, u.now())
		}
	} else {
		qe := asQuoteError(quoteErr)
		log.Printf("[payment][usecase] fx quote failed payment_id=%s kind=%s attempts=%d err=%v", pending.ID, qe.Kind, qe.Attempts, qe)
		mutate = func(p *entities.Payment) error {
			return p.Fail(qe, u.now())
		}
	}

	final, err := u.repo.Update(ctx, pending.ID, mutate)
	if err != nil {
		log.Printf("[payment][usecase] terminal update failed payment_id=%s err=%v", pending.ID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentStoreUnavailable, err)
	}
	log.Printf("[payment][usecase] resolved payment_id=%s status=%s", final.ID, final.Status)
	return final, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	if u.repo == nil {
		return entities.Payment{}, fmt.Errorf("%w: repository not configured", ErrPaymentStoreUnavailable)
	}

	p, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, interfaces.ErrPaymentRecordNotFound) {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentStoreUnavailable, err)
	}
	return p, nil
}

// ComputePayout returns amount × rate rounded half-up to PayoutDecimalPlaces.
// The result is +Inf when the product does not fit in a float64.
func ComputePayout(amount, rate float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(PayoutDecimalPlaces).
		InexactFloat64()
}

func normalizeIntent(in entities.PaymentIntent) (entities.PaymentIntent, error) {
	out := entities.PaymentIntent{
		Sender:              strings.TrimSpace(in.Sender),
		Receiver:            strings.TrimSpace(in.Receiver),
		Amount:              in.Amount,
		SourceCurrency:      strings.ToUpper(strings.TrimSpace(in.SourceCurrency)),
		DestinationCurrency: strings.ToUpper(strings.TrimSpace(in.DestinationCurrency)),
	}
	switch {
	case out.Sender == "":
		return entities.PaymentIntent{}, ErrInvalidSender
	case out.Receiver == "":
		return entities.PaymentIntent{}, ErrInvalidReceiver
	case math.IsNaN(out.Amount) || math.IsInf(out.Amount, 0) || out.Amount <= 0:
		return entities.PaymentIntent{}, ErrInvalidAmount
	case out.SourceCurrency == "" || out.DestinationCurrency == "":
		return entities.PaymentIntent{}, ErrInvalidCurrency
	}
	return out, nil
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate > 0
}

// validPayout rejects payouts that round to zero or overflow float64.
func validPayout(payout float64) bool {
	return validRate(payout)
}

func asQuoteError(err error) *entities.QuoteError {
	var qe *entities.QuoteError
	if errors.As(err, &qe) {
		return qe
	}
	return &entities.QuoteError{Kind: entities.QuoteFailureTransport, Message: err.Error(), Err: err}
}
