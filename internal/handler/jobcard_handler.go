package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// JobCardHandler serves shipment intake endpoints. The same handlers
// back the scale-specific route groups, which pin the scale filter.
type JobCardHandler struct {
	svc *service.JobCardService
}

func NewJobCardHandler(svc *service.JobCardService) *JobCardHandler {
	return &JobCardHandler{svc: svc}
}

// List returns a page of job cards.
func (h *JobCardHandler) List(c *gin.Context) {
	h.list(c, c.Query("scale"))
}

// ListScaled returns a list handler pinned to one scale, used by the
// /large-scale and /small-scale route groups.
func (h *JobCardHandler) ListScaled(scale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.list(c, scale)
	}
}

func (h *JobCardHandler) list(c *gin.Context, scale string) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":     c.Query("keyword"),
		"exporter_id": c.Query("exporter_id"),
		"status":      c.Query("status"),
		"scale":       scale,
	}
	if from := c.Query("received_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filters["received_from"] = t
		}
	}
	if to := c.Query("received_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filters["received_to"] = t
		}
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

// Get returns one job card with assays and invoices.
func (h *JobCardHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Job card ID is required")
		return
	}

	card, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Job card not found")
		return
	}

	Success(c, card)
}

// Create opens a new job card.
func (h *JobCardHandler) Create(c *gin.Context) {
	h.create(c, "")
}

// CreateScaled returns a create handler pinned to one scale.
func (h *JobCardHandler) CreateScaled(scale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.create(c, scale)
	}
}

func (h *JobCardHandler) create(c *gin.Context, scale string) {
	var req service.CreateJobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if scale != "" {
		req.Scale = scale
	}

	card, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, card)
}

// Update amends a job card before assay.
func (h *JobCardHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Job card ID is required")
		return
	}

	var req service.UpdateJobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	card, err := h.svc.Update(c.Request.Context(), id, GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, card)
}

// Delete removes a job card without assays or payments.
func (h *JobCardHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Job card ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}

	Success(c, gin.H{"message": "Job card deleted"})
}
