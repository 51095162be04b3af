package repository

import (
	"context"
	"strings"
	"sync"

	"fx_payments/internal/domain/entities"
	"fx_payments/internal/usecase/interfaces"
)

// PaymentMemoryRepository keeps Payment records in process memory.
//
// Records live until the process exits. A single RWMutex guards the map and
// is only ever held for map access and in-memory copies, never across I/O.
// Every record crossing the API boundary is a deep copy.
type PaymentMemoryRepository struct {
	mu       sync.RWMutex
	payments map[string]entities.Payment
}

var _ interfaces.IPaymentRepository = (*PaymentMemoryRepository)(nil)

func NewPaymentMemoryRepository() *PaymentMemoryRepository {
	return &PaymentMemoryRepository{
		payments: make(map[string]entities.Payment),
	}
}

func (r *PaymentMemoryRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	if strings.TrimSpace(p.ID) == "" {
		return entities.Payment{}, interfaces.ErrPaymentRecordInvalidID
	}
	stored := p.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.payments[p.ID]; exists {
		return entities.Payment{}, interfaces.ErrPaymentAlreadyExists
	}
	r.payments[p.ID] = stored
	return stored.Clone(), nil
}

func (r *PaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return entities.Payment{}, interfaces.ErrPaymentRecordNotFound
	}
	return p.Clone(), nil
}

func (r *PaymentMemoryRepository) Update(_ context.Context, id string, mutate func(p *entities.Payment) error) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.payments[id]
	if !ok {
		return entities.Payment{}, interfaces.ErrPaymentRecordNotFound
	}

	next := current.Clone()
	if err := mutate(&next); err != nil {
		return entities.Payment{}, err
	}
	// The id is the key; a mutation may not move the record.
	next.ID = id
	r.payments[id] = next
	return next.Clone(), nil
}

// Len reports how many payments are stored.
func (r *PaymentMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.payments)
}
