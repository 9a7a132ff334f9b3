package handler

import (
	"net/http"

	"nailpos/internal/dto"
	"nailpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Page godoc
// @Summary      Page through the sales ledger
// @Description  Newest first. Pass the "next" cursor of a page back as before_ts/before_id to get the following one.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        before_ts query string false "Cursor timestamp (RFC 3339)"
// @Param        before_id query string false "Cursor id"
// @Param        limit     query int    false "Page size (default 50)"
// @Success      200       {object} dto.SalePageResponse
// @Failure      422       {object} apierror.ValidationError
// @Router       /v1/sales [get]
func (h *SalesHandler) Page(c *gin.Context) {
	var filter dto.SalePageFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Page(c.Request.Context(), tenantOf(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) UpdateCost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateSaleCostRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateCost(c.Request.Context(), actorOf(c), id, req.Cost)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SoftDelete marks the sale deleted. It stays in the ledger.
func (h *SalesHandler) SoftDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.SoftDelete(c.Request.Context(), actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SalesHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Restore(c.Request.Context(), actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SalesHandler) PermanentDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.PermanentDelete(c.Request.Context(), actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SalesHandler) Commissions(c *gin.Context) {
	var rng dto.RangeFilter
	if !bindQuery(c, &rng) {
		return
	}
	resp, err := h.svc.CommissionReport(c.Request.Context(), tenantOf(c), rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
