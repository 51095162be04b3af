package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fx_payments/internal/domain/entities"
	"fx_payments/internal/usecase/interfaces"
)

func pendingPayment(id string) entities.Payment {
	return entities.NewPendingPayment(id, entities.PaymentIntent{
		Sender:              "alice",
		Receiver:            "bob",
		Amount:              100,
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
	}, time.Now().UTC())
}

func TestPaymentMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentMemoryRepository()

	created, err := repo.Create(ctx, pendingPayment("pay-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "pay-1" || created.Status != entities.PaymentStatusPending {
		t.Fatalf("unexpected payment: %+v", created)
	}

	got, err := repo.GetByID(ctx, "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "pay-1" || got.Amount != 100 || got.Diagnostics == nil {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 payment, got %d", repo.Len())
	}
}

func TestPaymentMemoryRepository_CreateErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentMemoryRepository()

	if _, err := repo.Create(ctx, pendingPayment(" ")); !errors.Is(err, interfaces.ErrPaymentRecordInvalidID) {
		t.Fatalf("expected ErrPaymentRecordInvalidID, got %v", err)
	}

	if _, err := repo.Create(ctx, pendingPayment("pay-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, pendingPayment("pay-1")); !errors.Is(err, interfaces.ErrPaymentAlreadyExists) {
		t.Fatalf("expected ErrPaymentAlreadyExists, got %v", err)
	}
}

func TestPaymentMemoryRepository_GetNotFound(t *testing.T) {
	repo := NewPaymentMemoryRepository()
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, interfaces.ErrPaymentRecordNotFound) {
		t.Fatalf("expected ErrPaymentRecordNotFound, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("lookup must not fabricate records")
	}
}

func TestPaymentMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := NewPaymentMemoryRepository()
		_, err := repo.Update(ctx, "missing", func(p *entities.Payment) error { return nil })
		if !errors.Is(err, interfaces.ErrPaymentRecordNotFound) {
			t.Fatalf("expected ErrPaymentRecordNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		repo := NewPaymentMemoryRepository()
		_, _ = repo.Create(ctx, pendingPayment("pay-1"))

		updated, err := repo.Update(ctx, "pay-1", func(p *entities.Payment) error {
			return p.Succeed(0.9213, 92.13, 10*time.Millisecond, time.Now().UTC())
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.PaymentStatusSucceeded || *updated.PayoutAmount != 92.13 {
			t.Fatalf("unexpected payment: %+v", updated)
		}

		got, _ := repo.GetByID(ctx, "pay-1")
		if got.Status != entities.PaymentStatusSucceeded || got.FXRate == nil || *got.FXRate != 0.9213 {
			t.Fatalf("update not committed: %+v", got)
		}
	})

	t.Run("failed mutation is not committed", func(t *testing.T) {
		repo := NewPaymentMemoryRepository()
		_, _ = repo.Create(ctx, pendingPayment("pay-1"))

		boom := errors.New("boom")
		_, err := repo.Update(ctx, "pay-1", func(p *entities.Payment) error {
			p.Status = entities.PaymentStatusSucceeded
			p.Diagnostics["partial"] = true
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		got, _ := repo.GetByID(ctx, "pay-1")
		if got.Status != entities.PaymentStatusPending {
			t.Fatalf("partial mutation leaked: %+v", got)
		}
		if _, ok := got.Diagnostics["partial"]; ok {
			t.Fatalf("partial diagnostics leaked: %+v", got.Diagnostics)
		}
	})

	t.Run("terminal records reject further transitions", func(t *testing.T) {
		repo := NewPaymentMemoryRepository()
		_, _ = repo.Create(ctx, pendingPayment("pay-1"))
		_, _ = repo.Update(ctx, "pay-1", func(p *entities.Payment) error {
			return p.Fail(&entities.QuoteError{Kind: entities.QuoteFailureProvider, Message: "status 500"}, time.Now())
		})

		_, err := repo.Update(ctx, "pay-1", func(p *entities.Payment) error {
			return p.Succeed(1, 100, 0, time.Now())
		})
		if !errors.Is(err, entities.ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
		}
		got, _ := repo.GetByID(ctx, "pay-1")
		if got.Status != entities.PaymentStatusFailed || got.PayoutAmount != nil {
			t.Fatalf("terminal record changed: %+v", got)
		}
	})

	t.Run("mutation cannot change the key", func(t *testing.T) {
		repo := NewPaymentMemoryRepository()
		_, _ = repo.Create(ctx, pendingPayment("pay-1"))
		updated, err := repo.Update(ctx, "pay-1", func(p *entities.Payment) error {
			p.ID = "other"
			return nil
		})
		if err != nil || updated.ID != "pay-1" {
			t.Fatalf("unexpected result err=%v payment=%+v", err, updated)
		}
		if _, err := repo.GetByID(ctx, "other"); !errors.Is(err, interfaces.ErrPaymentRecordNotFound) {
			t.Fatalf("record must stay under its original key")
		}
	})
}

func TestPaymentMemoryRepository_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentMemoryRepository()
	_, _ = repo.Create(ctx, pendingPayment("pay-1"))

	got, _ := repo.GetByID(ctx, "pay-1")
	got.Diagnostics["tampered"] = true
	got.Status = entities.PaymentStatusFailed

	again, _ := repo.GetByID(ctx, "pay-1")
	if again.Status != entities.PaymentStatusPending {
		t.Fatalf("stored record was mutated through a returned copy")
	}
	if _, ok := again.Diagnostics["tampered"]; ok {
		t.Fatalf("stored diagnostics were mutated through a returned copy")
	}
}

func TestPaymentMemoryRepository_ReadersNeverSeePartialUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentMemoryRepository()

	const n = 200
	for i := 0; i < n; i++ {
		_, _ = repo.Create(ctx, pendingPayment(fmt.Sprintf("pay-%d", i)))
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	errs := make(chan string, n)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				for i := 0; i < n; i++ {
					p, err := repo.GetByID(ctx, fmt.Sprintf("pay-%d", i))
					if err != nil {
						errs <- err.Error()
						return
					}
					if p.Status == entities.PaymentStatusSucceeded && (p.PayoutAmount == nil || p.FXRate == nil || p.PayoutCurrency == nil) {
						errs <- fmt.Sprintf("partial record observed: %+v", p)
						return
					}
				}
			}
		}()
	}

	var writers sync.WaitGroup
	for i := 0; i < n; i++ {
		writers.Add(1)
		go func(i int) {
			defer writers.Done()
			_, err := repo.Update(ctx, fmt.Sprintf("pay-%d", i), func(p *entities.Payment) error {
				return p.Succeed(2, 200, time.Millisecond, time.Now())
			})
			if err != nil {
				errs <- err.Error()
			}
		}(i)
	}
	writers.Wait()
	close(done)
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Fatal(e)
	}
}
