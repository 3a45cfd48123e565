// Package quota limits how many plans an authenticated user may generate per month.
package quota

import (
	"context"
	"errors"
)

type store interface {
	Consume(ctx context.Context, uid string) error
	EnsureUser(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
}

// Service orchestrates plan quota logic.
type Service struct {
	store store
}

func NewService(store store) *Service {
	return &Service{store: store}
}

// Consume deducts one plan from the user's monthly allowance.
// A user without a row is initialised and the plan is consumed immediately.
func (s *Service) Consume(ctx context.Context, uid string) error {
	err := s.store.Consume(ctx, uid)
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	// Row may be missing: create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.Consume(ctx, uid)
}

// Refund returns a plan taken by Consume whose generation did not produce a stored plan.
func (s *Service) Refund(ctx context.Context, uid string) error {
	return s.store.Refund(ctx, uid)
}
