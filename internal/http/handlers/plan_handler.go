// README: Travel plan handlers for generate and fetch.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"travelplan/internal/http/middleware"
	"travelplan/internal/modules/travelplan"
)

type planGenerator interface {
	GenerateFullTravelPlan(ctx context.Context, in travelplan.TravelFormInput, ownerUID string) (uuid.UUID, error)
}

type planReader interface {
	Get(ctx context.Context, id uuid.UUID) (*travelplan.TravelPlan, error)
}

type quotaConsumer interface {
	Consume(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
}

type PlanHandler struct {
	planner planGenerator
	plans   planReader
	quota   quotaConsumer
	timeout time.Duration
}

// NewPlanHandler wires the plan endpoints. quota may be nil; it is only
// consulted for authenticated callers.
func NewPlanHandler(planner planGenerator, plans planReader, quota quotaConsumer, timeout time.Duration) *PlanHandler {
	return &PlanHandler{planner: planner, plans: plans, quota: quota, timeout: timeout}
}

// Create handles POST /api/plans.
func (h *PlanHandler) Create(c *gin.Context) {
	var in travelplan.TravelFormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid travel form: "+err.Error())
		return
	}

	uid := middleware.CallerUID(c)
	charged := uid != "" && h.quota != nil
	if charged {
		if err := h.quota.Consume(c.Request.Context(), uid); err != nil {
			writePlanError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	id, err := h.planner.GenerateFullTravelPlan(ctx, in, uid)
	if err != nil {
		if charged {
			h.refund(c, uid)
		}
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": id})
}

// Get handles GET /api/plans/:id. Plans owned by another user are reported as not found.
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		writePlanError(c, err)
		return
	}
	if uid := middleware.CallerUID(c); uid != "" && plan.OwnerUID != "" && plan.OwnerUID != uid {
		writePlanError(c, travelplan.ErrNotFound)
		return
	}
	writeJSON(c, http.StatusOK, plan)
}

// refund returns the plan charged for a failed generation. It runs detached from
// the request context, which may already be past its deadline.
func (h *PlanHandler) refund(c *gin.Context, uid string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
	defer cancel()
	if err := h.quota.Refund(ctx, uid); err != nil {
		zap.L().Error("failed to refund plan quota",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("uid", uid),
			zap.Error(err),
		)
	}
}
