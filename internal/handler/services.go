package handler

import (
	"net/http"

	"nailpos/internal/dto"
	"nailpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ServicesHandler struct{ svc service.CatalogService }

func NewServicesHandler(svc service.CatalogService) *ServicesHandler {
	return &ServicesHandler{svc: svc}
}

func (h *ServicesHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorOf(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List catalog services with their material cost
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        name   query string false "Name contains"
// @Param        active query string false "true (default) | false | all"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 50)"
// @Success      200    {object} dto.ServiceListResponse
// @Router       /v1/services [get]
func (h *ServicesHandler) List(c *gin.Context) {
	var filter dto.ListFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListWithCost(c.Request.Context(), tenantOf(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServicesHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), tenantOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServicesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actorOf(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServicesHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActiveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), actorOf(c), id, *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServicesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cost godoc
// @Summary      Material cost of one service
// @Description  Rolls up the resolved recipe (manual, or legacy when the manual list is absent). Dangling references cost 0 and are listed in "missing".
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "Service UUID"
// @Success      200 {object} dto.CostResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/services/{id}/cost [get]
func (h *ServicesHandler) Cost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cost(c.Request.Context(), tenantOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recipe godoc
// @Summary      Resolved recipe for the edit form
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "Service UUID"
// @Success      200 {object} dto.RecipeResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/services/{id}/recipe [get]
func (h *ServicesHandler) Recipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Recipe(c.Request.Context(), tenantOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetRecipe godoc
// @Summary      Replace the manual recipe
// @Description  A list omitted from the body is left as is; an empty list is stored as an explicit empty recipe.
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string               true "Service UUID"
// @Param        body body     dto.SetRecipeRequest true "Recipe lists"
// @Success      200  {object} dto.RecipeResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/services/{id}/recipe [put]
func (h *ServicesHandler) SetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SetRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetRecipe(c.Request.Context(), actorOf(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearRecipe drops the manual recipe so legacy recipes apply again.
func (h *ServicesHandler) ClearRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.ClearRecipe(c.Request.Context(), actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
