// README: Plan quota tests (lazy reset and allowance boundary logic).
package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplan/internal/testutil"
)

type fakeStore struct {
	remaining map[string]int
	ensureErr error
	consumes  int
	refunds   int
}

func (f *fakeStore) Refund(_ context.Context, uid string) error {
	f.refunds++
	f.remaining[uid]++
	return nil
}

func (f *fakeStore) Consume(_ context.Context, uid string) error {
	f.consumes++
	n, ok := f.remaining[uid]
	if !ok || n == 0 {
		return ErrQuotaExceeded
	}
	f.remaining[uid] = n - 1
	return nil
}

func (f *fakeStore) EnsureUser(_ context.Context, uid string) error {
	if f.ensureErr != nil {
		return f.ensureErr
	}
	if _, ok := f.remaining[uid]; !ok {
		f.remaining[uid] = 2
	}
	return nil
}

func TestServiceInitialisesNewUser(t *testing.T) {
	st := &fakeStore{remaining: map[string]int{}}
	svc := NewService(st)

	require.NoError(t, svc.Consume(context.Background(), "new"))
	assert.Equal(t, 1, st.remaining["new"])
	assert.Equal(t, 2, st.consumes)
}

func TestServiceExhaustedUser(t *testing.T) {
	st := &fakeStore{remaining: map[string]int{"spent": 0}}
	svc := NewService(st)

	err := svc.Consume(context.Background(), "spent")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestServiceEnsureFailure(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeStore{remaining: map[string]int{}, ensureErr: boom})

	assert.ErrorIs(t, svc.Consume(context.Background(), "new"), boom)
}

// TestConsumeCrossMonthReset verifies that a user with no plans left from a previous month
// is reset and the request succeeds.
func TestConsumeCrossMonthReset(t *testing.T) {
	store, db := setupTestStore(t, 5)
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO plan_quota VALUES ('user_reset', 0, '2000-01')")
	require.NoError(t, err)

	require.NoError(t, NewService(store).Consume(ctx, "user_reset"))
	assert.Equal(t, 4, remaining(t, db, "user_reset"))
}

// TestConsumeExhaustedThisMonth verifies that a user with 0 plans in the current month is blocked.
func TestConsumeExhaustedThisMonth(t *testing.T) {
	store, db := setupTestStore(t, 5)
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO plan_quota VALUES ('user_zero', 0, $1)", time.Now().UTC().Format("2006-01"))
	require.NoError(t, err)

	assert.ErrorIs(t, NewService(store).Consume(ctx, "user_zero"), ErrQuotaExceeded)
}

// TestConsumeNewUser verifies that a user absent from the table is initialised on first call.
func TestConsumeNewUser(t *testing.T) {
	store, db := setupTestStore(t, 5)

	require.NoError(t, NewService(store).Consume(context.Background(), "user_new"))
	assert.Equal(t, 4, remaining(t, db, "user_new"))
}

func TestServiceRefundRestoresPlan(t *testing.T) {
	st := &fakeStore{remaining: map[string]int{"u": 1}}
	svc := NewService(st)
	ctx := context.Background()

	require.NoError(t, svc.Consume(ctx, "u"))
	require.NoError(t, svc.Refund(ctx, "u"))
	assert.Equal(t, 1, st.remaining["u"])
	assert.Equal(t, 1, st.refunds)
}

// TestRefundAfterConsume verifies a refunded plan can be consumed again.
func TestRefundAfterConsume(t *testing.T) {
	store, db := setupTestStore(t, 1)
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Consume(ctx, "user_refund"))
	assert.ErrorIs(t, svc.Consume(ctx, "user_refund"), ErrQuotaExceeded)

	require.NoError(t, svc.Refund(ctx, "user_refund"))
	assert.Equal(t, 1, remaining(t, db, "user_refund"))
	require.NoError(t, svc.Consume(ctx, "user_refund"))
}

// TestRefundCappedAtAllowance verifies refunds never raise the balance above the monthly allowance.
func TestRefundCappedAtAllowance(t *testing.T) {
	store, db := setupTestStore(t, 3)
	ctx := context.Background()

	require.NoError(t, store.EnsureUser(ctx, "user_full"))
	require.NoError(t, store.Refund(ctx, "user_full"))
	assert.Equal(t, 3, remaining(t, db, "user_full"))
}

// TestRefundStaleMonthIgnored verifies a refund for last month's plan does not touch the row.
func TestRefundStaleMonthIgnored(t *testing.T) {
	store, db := setupTestStore(t, 5)
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO plan_quota VALUES ('user_stale', 0, '2000-01')")
	require.NoError(t, err)

	require.NoError(t, store.Refund(ctx, "user_stale"))
	assert.Equal(t, 0, remaining(t, db, "user_stale"))
}

func setupTestStore(t *testing.T, monthly int) (*Store, *pgxpool.Pool) {
	t.Helper()
	db := testutil.OpenDB(t, "plan_quota")
	return NewStore(db, monthly), db
}

func remaining(t *testing.T, db *pgxpool.Pool, uid string) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(), "SELECT plans_remaining FROM plan_quota WHERE uid = $1", uid).Scan(&n)
	require.NoError(t, err)
	return n
}
