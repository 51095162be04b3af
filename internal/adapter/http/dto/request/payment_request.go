package request

import "fx_payments/internal/domain/entities"

// PaymentCreateRequest is the payload accepted by POST /v1/payments.
type PaymentCreateRequest struct {
	Sender              string  `json:"sender" binding:"required" example:"alice"`
	Receiver            string  `json:"receiver" binding:"required" example:"bob"`
	Amount              float64 `json:"amount" binding:"required,gt=0" example:"100"`
	SourceCurrency      string  `json:"source_currency" binding:"required,max=8" example:"USD"`
	DestinationCurrency string  `json:"destination_currency" binding:"required,max=8" example:"EUR"`
}

func (r PaymentCreateRequest) ToIntent() entities.PaymentIntent {
	return entities.PaymentIntent{
		Sender:              r.Sender,
		Receiver:            r.Receiver,
		Amount:              r.Amount,
		SourceCurrency:      r.SourceCurrency,
		DestinationCurrency: r.DestinationCurrency,
	}
}
