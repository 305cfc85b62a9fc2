package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// PriceHandler serves daily price endpoints.
type PriceHandler struct {
	svc *service.PriceService
}

func NewPriceHandler(svc *service.PriceService) *PriceHandler {
	return &PriceHandler{svc: svc}
}

// List returns price rows, optionally bounded by ?from and ?to dates.
func (h *PriceHandler) List(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = t
	}

	prices, err := h.svc.List(c.Request.Context(), from, to, 90)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{"items": prices})
}

// Latest returns the most recent price row.
func (h *PriceHandler) Latest(c *gin.Context) {
	price, err := h.svc.GetLatest(c.Request.Context())
	if err != nil {
		NotFound(c, "No daily prices recorded yet")
		return
	}

	Success(c, price)
}

// Set records or overwrites the prices for a date.
func (h *PriceHandler) Set(c *gin.Context) {
	var req service.SetDailyPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	price, err := h.svc.Set(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Created(c, price)
}

// Refresh pulls today's spot prices from the external feed.
func (h *PriceHandler) Refresh(c *gin.Context) {
	price, err := h.svc.RefreshFromFeed(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, price)
}

// Delete removes one price row.
func (h *PriceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Price ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}

	Success(c, gin.H{"message": "Price deleted"})
}
