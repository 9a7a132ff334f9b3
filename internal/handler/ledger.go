package handler

import (
	"io"
	"net/http"
	"time"

	"nailpos/internal/service"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves ledger browsing sessions. A session holds the live
// window and the loaded history of one console screen.
type LedgerHandler struct {
	svc       service.LedgerService
	keepAlive time.Duration
}

func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc, keepAlive: 25 * time.Second}
}

// Open godoc
// @Summary      Open a ledger session
// @Description  Subscribes to the newest sales and returns the first snapshot.
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} dto.LedgerSessionResponse
// @Router       /v1/ledger/sessions [post]
func (h *LedgerHandler) Open(c *gin.Context) {
	resp, err := h.svc.Open(c.Request.Context(), tenantOf(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LedgerHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), tenantOf(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// More godoc
// @Summary      Load the next history page
// @Description  Concurrent calls share one fetch. Once the ledger is exhausted further calls fetch nothing.
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "Session id"
// @Success      200 {object} dto.LedgerSessionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ledger/sessions/{id}/more [post]
func (h *LedgerHandler) More(c *gin.Context) {
	resp, err := h.svc.LoadMore(c.Request.Context(), tenantOf(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LedgerHandler) Close(c *gin.Context) {
	if err := h.svc.Close(c.Request.Context(), tenantOf(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream pushes the session view as server-sent "snapshot" events: one right
// away, then one per change, with comment pings in between.
func (h *LedgerHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, id := tenantOf(c), c.Param("id")

	updates, stop, err := h.svc.Watch(ctx, tenantID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer stop()

	first, err := h.svc.Get(ctx, tenantID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", first)
	c.Writer.Flush()

	ping := time.NewTicker(h.keepAlive)
	defer ping.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-updates:
			if !ok {
				c.SSEvent("closed", gin.H{"session_id": id})
				return false
			}
			view, err := h.svc.Get(ctx, tenantID, id)
			if err != nil {
				c.SSEvent("closed", gin.H{"session_id": id})
				return false
			}
			c.SSEvent("snapshot", view)
			return true
		case <-ping.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			return true
		}
	})
}
