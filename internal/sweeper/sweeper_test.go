package sweeper_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/tarjamli/backend/internal/sweeper"
)

type fakeStore struct {
	deleted int64
	err     error
	calls   int
}

func (s *fakeStore) DeleteExpiredTokens(_ context.Context) (int64, error) {
	s.calls++
	return s.deleted, s.err
}

func TestSweep_DeletesExpired(t *testing.T) {
	store := &fakeStore{deleted: 3}
	sw := sweeper.New(store, slog.Default(), "@hourly")

	sw.Sweep(context.Background())

	if store.calls != 1 {
		t.Errorf("calls = %d, want 1", store.calls)
	}
}

func TestSweep_StoreErrorDoesNotPanic(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	sw := sweeper.New(store, slog.Default(), "@hourly")

	// must log and carry on; the next cycle retries
	sw.Sweep(context.Background())

	if store.calls != 1 {
		t.Errorf("calls = %d, want 1", store.calls)
	}
}
