package response

import (
	"time"

	"fx_payments/internal/domain/entities"
)

type PaymentResponse struct {
	ID                  string         `json:"id"`
	Sender              string         `json:"sender"`
	Receiver            string         `json:"receiver"`
	Amount              float64        `json:"amount"`
	SourceCurrency      string         `json:"source_currency"`
	DestinationCurrency string         `json:"destination_currency"`
	Status              string         `json:"status"`
	PayoutAmount        *float64       `json:"payout_amount,omitempty"`
	PayoutCurrency      *string        `json:"payout_currency,omitempty"`
	FXRate              *float64       `json:"fx_rate,omitempty"`
	ErrorMessage        *string        `json:"error_message,omitempty"`
	Diagnostics         map[string]any `json:"diagnostics"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	p = p.Clone()
	return PaymentResponse{
		ID:                  p.ID,
		Sender:              p.Sender,
		Receiver:            p.Receiver,
		Amount:              p.Amount,
		SourceCurrency:      p.SourceCurrency,
		DestinationCurrency: p.DestinationCurrency,
		Status:              string(p.Status),
		PayoutAmount:        p.PayoutAmount,
		PayoutCurrency:      p.PayoutCurrency,
		FXRate:              p.FXRate,
		ErrorMessage:        p.ErrorMessage,
		Diagnostics:         p.Diagnostics,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
