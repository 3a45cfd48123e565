// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelplan/internal/http/handlers"
	"travelplan/internal/http/middleware"
	"travelplan/internal/infra"
	"travelplan/internal/modules/quota"
	"travelplan/internal/modules/travelplan"
	"travelplan/internal/service"
)

type RouterDeps struct {
	Planner *service.TripPlanner
	Plans   *travelplan.Store
	Quota   *quota.Service
	// Verifier enables Firebase auth on /api routes when non-nil.
	Verifier        infra.TokenVerifier
	GenerateTimeout time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	}

	plans := handlers.NewPlanHandler(deps.Planner, deps.Plans, nil, deps.GenerateTimeout)
	if deps.Verifier != nil && deps.Quota != nil {
		plans = handlers.NewPlanHandler(deps.Planner, deps.Plans, deps.Quota, deps.GenerateTimeout)
	}
	api.POST("/plans", plans.Create)
	api.GET("/plans/:id", plans.Get)

	return r
}
