package interfaces

import (
	"context"
	"errors"
	"fx_payments/internal/domain/entities"
)

var (
	ErrPaymentRecordNotFound  = errors.New("payment record not found")
	ErrPaymentAlreadyExists   = errors.New("payment record already exists")
	ErrPaymentRecordInvalidID = errors.New("payment record id is empty")
)

// IPaymentRepository abstracts storage of Payment records.
//
// Implementations must be safe for concurrent use. Update applies mutate to
// a private copy of the record and commits it only when mutate returns nil,
// so readers never observe a half-applied transition.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	Update(ctx context.Context, id string, mutate func(p *entities.Payment) error) (entities.Payment, error)
}
