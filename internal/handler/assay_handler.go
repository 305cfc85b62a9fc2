package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// AssayHandler serves measurement capture endpoints nested under job
// cards.
type AssayHandler struct {
	svc *service.AssayService
}

func NewAssayHandler(svc *service.AssayService) *AssayHandler {
	return &AssayHandler{svc: svc}
}

// ListByJobCard returns all assays of a job card.
func (h *AssayHandler) ListByJobCard(c *gin.Context) {
	jobCardID := c.Param("id")
	if jobCardID == "" {
		BadRequest(c, "Job card ID is required")
		return
	}

	assays, err := h.svc.ListByJobCard(c.Request.Context(), jobCardID)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, gin.H{"items": assays})
}

// Create records a measurement batch for a job card.
func (h *AssayHandler) Create(c *gin.Context) {
	jobCardID := c.Param("id")
	if jobCardID == "" {
		BadRequest(c, "Job card ID is required")
		return
	}

	var req service.CreateAssayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assay, err := h.svc.Create(c.Request.Context(), jobCardID, GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, assay)
}

// Get returns one assay with its measurements.
func (h *AssayHandler) Get(c *gin.Context) {
	id := c.Param("assayId")
	if id == "" {
		BadRequest(c, "Assay ID is required")
		return
	}

	assay, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Assay not found")
		return
	}

	Success(c, assay)
}

// Delete removes an assay and recomputes the job card.
func (h *AssayHandler) Delete(c *gin.Context) {
	id := c.Param("assayId")
	if id == "" {
		BadRequest(c, "Assay ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}

	Success(c, gin.H{"message": "Assay deleted"})
}

// AddMeasurement appends one piece to an assay.
func (h *AssayHandler) AddMeasurement(c *gin.Context) {
	assayID := c.Param("assayId")
	if assayID == "" {
		BadRequest(c, "Assay ID is required")
		return
	}

	var req service.AddMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assay, err := h.svc.AddMeasurement(c.Request.Context(), assayID, GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, assay)
}

// DeleteMeasurement removes one piece from an assay.
func (h *AssayHandler) DeleteMeasurement(c *gin.Context) {
	assayID := c.Param("assayId")
	measurementID := c.Param("measurementId")
	if assayID == "" || measurementID == "" {
		BadRequest(c, "Assay and measurement IDs are required")
		return
	}

	assay, err := h.svc.DeleteMeasurement(c.Request.Context(), assayID, measurementID)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, assay)
}
