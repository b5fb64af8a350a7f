package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"costumes_back_end/internal/database"
	"costumes_back_end/internal/models"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

// failingStorage simule un stockage indisponible
type failingStorage struct{}

var errUnavailable = errors.New("stockage indisponible")

func (failingStorage) Get(context.Context, string) (string, bool, error) { return "", false, errUnavailable }
func (failingStorage) Set(context.Context, string, string) error         { return errUnavailable }
func (failingStorage) Close() error                                      { return nil }

var fixedDay = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestStore(t *testing.T, storage database.Storage) (*Store, *recordingNotifier) {
	t.Helper()
	if storage == nil {
		storage = database.NewMemory()
	}
	n := &recordingNotifier{}
	s := New(context.Background(), storage,
		WithNotifier(n),
		WithClock(func() time.Time { return fixedDay }),
	)
	return s, n
}

func mustProduct(t *testing.T, s *Store, id string) models.Product {
	t.Helper()
	p, ok := s.Product(id)
	if !ok {
		t.Fatalf("produit %s introuvable", id)
	}
	return p
}

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
