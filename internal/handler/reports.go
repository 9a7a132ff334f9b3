package handler

import (
	"net/http"

	"nailpos/internal/dto"
	"nailpos/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Summary godoc
// @Summary      Dashboard figures for a date range
// @Description  Revenue by weekday, top staff, top service and ticket statistics over non-deleted sales in [from, to).
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        from query string true "YYYY-MM-DD, inclusive"
// @Param        to   query string true "YYYY-MM-DD, exclusive"
// @Success      200  {object} dto.AnalyticsSummary
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var rng dto.RangeFilter
	if !bindQuery(c, &rng) {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), tenantOf(c), rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.Alerts(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
