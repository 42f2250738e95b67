package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/JonMunkholm/inventory/internal/database"
)

// Service provides the inventory operations over a store.
//
// Every operation opens its own connection, executes exactly one statement
// and releases the connection before returning.
type Service struct {
	provider *database.Provider
	writes   *WriteLimiter
}

var _ Inventory = (*Service)(nil)

// NewService creates a new Service instance.
func NewService(provider *database.Provider) (*Service, error) {
	if provider == nil {
		return nil, errors.New("nil database provider")
	}
	return &Service{
		provider: provider,
		writes:   NewWriteLimiter(DefaultMaxConcurrentWrites, DefaultWriteWait),
	}, nil
}

// SetWriteLimiter replaces the limiter bounding concurrent writes.
// Call before the service is shared.
func (s *Service) SetWriteLimiter(l *WriteLimiter) {
	if l != nil {
		s.writes = l
	}
}

// WaitForWrites blocks until in-flight writes finish or ctx ends.
func (s *Service) WaitForWrites(ctx context.Context) error {
	return s.writes.WaitForDrain(ctx)
}

// AddProduct validates the form input and inserts the product.
// A validation failure is returned as *ValidationError without touching the
// store.
func (s *Service) AddProduct(ctx context.Context, in ProductInput, rules ProductRules) (Product, error) {
	p, err := ValidateProduct(in, rules)
	if err != nil {
		return Product{}, err
	}

	n, err := s.InsertProduct(ctx, &p)
	if err != nil {
		return Product{}, err
	}
	if n == 0 {
		return Product{}, storageFailure(ctx, "insert product", errors.New("no row inserted"))
	}

	slog.InfoContext(ctx, "product added", append([]any{"id", p.ID, "name", p.Name}, changeAttrs(ctx)...)...)
	return p, nil
}

// AddBuyer validates the form input and inserts the buyer.
func (s *Service) AddBuyer(ctx context.Context, in BuyerInput) (Buyer, error) {
	b, err := ValidateBuyer(in)
	if err != nil {
		return Buyer{}, err
	}

	n, err := s.InsertBuyer(ctx, &b)
	if err != nil {
		return Buyer{}, err
	}
	if n == 0 {
		return Buyer{}, storageFailure(ctx, "insert buyer", errors.New("no row inserted"))
	}

	slog.InfoContext(ctx, "buyer added", append([]any{"id", b.ID, "name", b.Name}, changeAttrs(ctx)...)...)
	return b, nil
}

// Ping verifies the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.provider.Ping(ctx); err != nil {
		return storageFailure(ctx, "ping", err)
	}
	return nil
}
