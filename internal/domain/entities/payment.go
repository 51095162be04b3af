package entities

import (
	"errors"
	"time"
)

// PaymentStatus represents the lifecycle of a cross-currency payment.
//
// PENDING is the only initial state. SUCCEEDED and FAILED are terminal:
// once a payment reaches one of them it never transitions again.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

var ErrInvalidStatusTransition = errors.New("invalid payment status transition")

// Diagnostic keys recorded about the FX quote attempt.
const (
	DiagnosticFXLatencyMS = "fx_latency_ms"
	DiagnosticFXError     = "fx_error"
	DiagnosticFXErrorKind = "fx_error_kind"
	DiagnosticFXAttempts  = "fx_attempts"
)

// Diagnostics is an additive key/value bag. Values are strings or numbers.
type Diagnostics map[string]any

func (d Diagnostics) Clone() Diagnostics {
	out := make(Diagnostics, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// PaymentIntent is the already-shaped input accepted by the payment processor.
type PaymentIntent struct {
	Sender              string
	Receiver            string
	Amount              float64
	SourceCurrency      string
	DestinationCurrency string
}

// Payment is the record kept by the payment store.
//
// PayoutAmount, PayoutCurrency and FXRate are set only when the payment
// SUCCEEDED. ErrorMessage is set only when it FAILED.
type Payment struct {
	ID                  string        `json:"id"`
	Sender              string        `json:"sender"`
	Receiver            string        `json:"receiver"`
	Amount              float64       `json:"amount"`
	SourceCurrency      string        `json:"source_currency"`
	DestinationCurrency string        `json:"destination_currency"`
	Status              PaymentStatus `json:"status"`
	PayoutAmount        *float64      `json:"payout_amount,omitempty"`
	PayoutCurrency      *string       `json:"payout_currency,omitempty"`
	FXRate              *float64      `json:"fx_rate,omitempty"`
	ErrorMessage        *string       `json:"error_message,omitempty"`
	Diagnostics         Diagnostics   `json:"diagnostics"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

func NewPendingPayment(id string, intent PaymentIntent, now time.Time) Payment {
	return Payment{
		ID:                  id,
		Sender:              intent.Sender,
		Receiver:            intent.Receiver,
		Amount:              intent.Amount,
		SourceCurrency:      intent.SourceCurrency,
		DestinationCurrency: intent.DestinationCurrency,
		Status:              PaymentStatusPending,
		Diagnostics:         Diagnostics{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Clone returns a deep copy; the store hands out clones only.
func (p Payment) Clone() Payment {
	out := p
	if p.PayoutAmount != nil {
		v := *p.PayoutAmount
		out.PayoutAmount = &v
	}
	if p.PayoutCurrency != nil {
		v := *p.PayoutCurrency
		out.PayoutCurrency = &v
	}
	if p.FXRate != nil {
		v := *p.FXRate
		out.FXRate = &v
	}
	if p.ErrorMessage != nil {
		v := *p.ErrorMessage
		out.ErrorMessage = &v
	}
	if p.Diagnostics != nil {
		out.Diagnostics = p.Diagnostics.Clone()
	} else {
		out.Diagnostics = Diagnostics{}
	}
	return out
}

// Succeed moves a PENDING payment to SUCCEEDED.
func (p *Payment) Succeed(rate, payout float64, latency time.Duration, now time.Time) error {
	if p.Status != PaymentStatusPending {
		return ErrInvalidStatusTransition
	}
	currency := p.DestinationCurrency
	p.Status = PaymentStatusSucceeded
	p.FXRate = &rate
	p.PayoutAmount = &payout
	p.PayoutCurrency = &currency
	p.addDiagnostic(DiagnosticFXLatencyMS, latency.Milliseconds())
	p.UpdatedAt = now
	return nil
}

// Fail moves a PENDING payment to FAILED. Latency is recorded only when
// an FX call was actually made.
func (p *Payment) Fail(qe *QuoteError, now time.Time) error {
	if p.Status != PaymentStatusPending {
		return ErrInvalidStatusTransition
	}
	msg := qe.Error()
	p.Status = PaymentStatusFailed
	p.ErrorMessage = &msg
	p.addDiagnostic(DiagnosticFXError, msg)
	p.addDiagnostic(DiagnosticFXErrorKind, string(qe.Kind))
	p.addDiagnostic(DiagnosticFXAttempts, qe.Attempts)
	if qe.Attempts > 0 {
		p.addDiagnostic(DiagnosticFXLatencyMS, qe.Latency.Milliseconds())
	}
	p.UpdatedAt = now
	return nil
}

func (p *Payment) addDiagnostic(key string, value any) {
	if p.Diagnostics == nil {
		p.Diagnostics = Diagnostics{}
	}
	p.Diagnostics[key] = value
}
