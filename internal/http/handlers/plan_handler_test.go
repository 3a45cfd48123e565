package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplan/internal/modules/quota"
	"travelplan/internal/modules/travelplan"
)

type fakePlanner struct {
	id       uuid.UUID
	err      error
	calls    int
	ownerUID string
	deadline bool
}

func (f *fakePlanner) GenerateFullTravelPlan(ctx context.Context, _ travelplan.TravelFormInput, ownerUID string) (uuid.UUID, error) {
	f.calls++
	f.ownerUID = ownerUID
	_, f.deadline = ctx.Deadline()
	return f.id, f.err
}

type fakeReader struct {
	plan *travelplan.TravelPlan
	err  error
}

func (f *fakeReader) Get(_ context.Context, _ uuid.UUID) (*travelplan.TravelPlan, error) {
	return f.plan, f.err
}

type fakeQuota struct {
	err     error
	uids    []string
	refunds []string
}

func (f *fakeQuota) Consume(_ context.Context, uid string) error {
	f.uids = append(f.uids, uid)
	return f.err
}

func (f *fakeQuota) Refund(_ context.Context, uid string) error {
	f.refunds = append(f.refunds, uid)
	return nil
}

// charged is the number of plans the caller has paid for.
func (f *fakeQuota) charged() int {
	return len(f.uids) - len(f.refunds)
}

const validForm = `{
	"destination": "Lisbon",
	"travelDates": {"startDate": "2024-05-01T00:00:00Z", "endDate": "2024-05-03T00:00:00Z"},
	"numberOfPeople": 2,
	"travelCompanions": "couple",
	"travelType": "relaxing",
	"keyInterests": ["food"],
	"budget": "medium"
}`

func newPlanRouter(h *PlanHandler, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if uid != "" {
		r.Use(func(c *gin.Context) {
			c.Set("caller_uid", uid)
			c.Next()
		})
	}
	r.POST("/api/plans", h.Create)
	r.GET("/api/plans/:id", h.Get)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlan(t *testing.T) {
	id := uuid.New()
	planner := &fakePlanner{id: id}
	r := newPlanRouter(NewPlanHandler(planner, &fakeReader{}, nil, time.Minute), "")

	w := do(r, http.MethodPost, "/api/plans", validForm)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp["id"])
	assert.Equal(t, 1, planner.calls)
	assert.True(t, planner.deadline)
}

func TestCreatePlanInvalidForm(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "missing destination", body: strings.Replace(validForm, `"Lisbon"`, `""`, 1)},
		{name: "no people", body: strings.Replace(validForm, `"numberOfPeople": 2`, `"numberOfPeople": 0`, 1)},
		{name: "end before start", body: strings.Replace(validForm, `2024-05-03`, `2024-04-01`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := &fakePlanner{}
			r := newPlanRouter(NewPlanHandler(planner, &fakeReader{}, nil, 0), "")

			w := do(r, http.MethodPost, "/api/plans", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, planner.calls)
		})
	}
}

func TestCreatePlanErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "aggregation",
			err:  &travelplan.Error{Kind: travelplan.KindAggregation, Op: "x", Err: errors.New("provider down")},
			want: http.StatusBadGateway,
		},
		{
			name: "persistence",
			err:  &travelplan.Error{Kind: travelplan.KindPersistence, Op: "x", Err: errors.New("db down")},
			want: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPlanRouter(NewPlanHandler(&fakePlanner{err: tt.err}, &fakeReader{}, nil, 0), "")
			w := do(r, http.MethodPost, "/api/plans", validForm)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCreatePlanQuota(t *testing.T) {
	t.Run("consumed for authenticated caller", func(t *testing.T) {
		q := &fakeQuota{}
		planner := &fakePlanner{id: uuid.New()}
		r := newPlanRouter(NewPlanHandler(planner, &fakeReader{}, q, 0), "uid-1")

		w := do(r, http.MethodPost, "/api/plans", validForm)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, []string{"uid-1"}, q.uids)
		assert.Empty(t, q.refunds)
		assert.Equal(t, 1, q.charged())
		assert.Equal(t, "uid-1", planner.ownerUID)
	})
	t.Run("not charged when generation fails", func(t *testing.T) {
		for _, kind := range []travelplan.Kind{travelplan.KindAggregation, travelplan.KindPersistence} {
			q := &fakeQuota{}
			planner := &fakePlanner{err: &travelplan.Error{Kind: kind, Op: "x", Err: errors.New("down")}}
			r := newPlanRouter(NewPlanHandler(planner, &fakeReader{}, q, 0), "uid-1")

			w := do(r, http.MethodPost, "/api/plans", validForm)

			assert.GreaterOrEqual(t, w.Code, http.StatusInternalServerError, kind.String())
			assert.Equal(t, []string{"uid-1"}, q.refunds, kind.String())
			assert.Zero(t, q.charged(), kind.String())
		}
	})
	t.Run("exceeded", func(t *testing.T) {
		planner := &fakePlanner{}
		q := &fakeQuota{err: quota.ErrQuotaExceeded}
		r := newPlanRouter(NewPlanHandler(planner, &fakeReader{}, q, 0), "uid-1")

		w := do(r, http.MethodPost, "/api/plans", validForm)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Zero(t, planner.calls)
		assert.Empty(t, q.refunds)
	})
	t.Run("skipped for anonymous caller", func(t *testing.T) {
		q := &fakeQuota{}
		r := newPlanRouter(NewPlanHandler(&fakePlanner{id: uuid.New()}, &fakeReader{}, q, 0), "")

		w := do(r, http.MethodPost, "/api/plans", validForm)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, q.uids)
	})
}

func TestGetPlan(t *testing.T) {
	id := uuid.New()
	plan := &travelplan.TravelPlan{ID: id, OwnerUID: "uid-1", Destination: "Lisbon"}

	t.Run("found", func(t *testing.T) {
		r := newPlanRouter(NewPlanHandler(&fakePlanner{}, &fakeReader{plan: plan}, nil, 0), "uid-1")
		w := do(r, http.MethodGet, "/api/plans/"+id.String(), "")

		require.Equal(t, http.StatusOK, w.Code)
		var got travelplan.TravelPlan
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Lisbon", got.Destination)
	})
	t.Run("bad id", func(t *testing.T) {
		r := newPlanRouter(NewPlanHandler(&fakePlanner{}, &fakeReader{plan: plan}, nil, 0), "")
		w := do(r, http.MethodGet, "/api/plans/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("missing", func(t *testing.T) {
		r := newPlanRouter(NewPlanHandler(&fakePlanner{}, &fakeReader{err: travelplan.ErrNotFound}, nil, 0), "")
		w := do(r, http.MethodGet, "/api/plans/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("other owner", func(t *testing.T) {
		r := newPlanRouter(NewPlanHandler(&fakePlanner{}, &fakeReader{plan: plan}, nil, 0), "uid-2")
		w := do(r, http.MethodGet, "/api/plans/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
