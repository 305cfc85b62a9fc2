package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// ExporterHandler serves exporter registration endpoints.
type ExporterHandler struct {
	svc *service.ExporterService
}

func NewExporterHandler(svc *service.ExporterService) *ExporterHandler {
	return &ExporterHandler{svc: svc}
}

// List returns a page of exporters.
func (h *ExporterHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
		"type":    c.Query("type"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

// Get returns one exporter.
func (h *ExporterHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Exporter ID is required")
		return
	}

	exporter, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Exporter not found")
		return
	}

	Success(c, exporter)
}

// Create registers a new exporter.
func (h *ExporterHandler) Create(c *gin.Context) {
	var req service.CreateExporterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	exporter, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, exporter)
}

// Update amends an exporter.
func (h *ExporterHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Exporter ID is required")
		return
	}

	var req service.UpdateExporterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	exporter, err := h.svc.Update(c.Request.Context(), id, GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, exporter)
}

// Delete removes an exporter without job cards.
func (h *ExporterHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Exporter ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serviceError(c, err)
		return
	}

	Success(c, gin.H{"message": "Exporter deleted"})
}
