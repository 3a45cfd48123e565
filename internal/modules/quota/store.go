// README: Plan quota store backed by PostgreSQL (lazy monthly reset).
package quota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles plan_quota persistence.
type Store struct {
	db      *pgxpool.Pool
	monthly int
}

// NewStore returns a Store granting monthly plans per user.
func NewStore(db *pgxpool.Pool, monthly int) *Store {
	if monthly <= 0 {
		monthly = DefaultMonthlyPlans
	}
	return &Store{db: db, monthly: monthly}
}

func (s *Store) month() string {
	return time.Now().UTC().Format("2006-01")
}

// Consume atomically checks the monthly allowance and deducts one plan.
// The counter resets to the full allowance when last_reset_month is behind the current month.
// Returns ErrQuotaExceeded when no row is updated (allowance spent or user absent).
func (s *Store) Consume(ctx context.Context, uid string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE plan_quota SET
			plans_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE plans_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR plans_remaining > 0)
	`, s.month(), s.monthly, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExceeded
	}
	return nil
}

// EnsureUser inserts a plan_quota row for uid with the full allowance.
// Existing rows are left untouched.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO plan_quota (uid, plans_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.monthly, s.month())
	return err
}

// Refund gives back one plan consumed this month, never exceeding the allowance.
// A refund that arrives after the month rolled over is dropped: the reset already
// restored the full allowance.
func (s *Store) Refund(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE plan_quota SET plans_remaining = LEAST(plans_remaining + 1, $1)
		WHERE uid = $2 AND last_reset_month = $3
	`, s.monthly, uid, s.month())
	return err
}
