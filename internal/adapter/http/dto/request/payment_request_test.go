package request

import (
	"testing"

	"fx_payments/internal/domain/entities"
)

func TestPaymentCreateRequest_ToIntent(t *testing.T) {
	r := PaymentCreateRequest{
		Sender:              " alice ",
		Receiver:            "bob",
		Amount:              12.5,
		SourceCurrency:      " usd",
		DestinationCurrency: "Eur",
	}

	want := entities.PaymentIntent{
		Sender:              " alice ",
		Receiver:            "bob",
		Amount:              12.5,
		SourceCurrency:      " usd",
		DestinationCurrency: "Eur",
	}
	if got := r.ToIntent(); got != want {
		t.Fatalf("expected fields copied as-is, got %+v", got)
	}
}
