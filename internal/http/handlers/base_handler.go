// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplan/internal/modules/quota"
	"travelplan/internal/modules/travelplan"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, travelplan.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, quota.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case travelplan.KindOf(err) == travelplan.KindAggregation:
		writeError(c, http.StatusBadGateway, "failed to generate full travel plan")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
