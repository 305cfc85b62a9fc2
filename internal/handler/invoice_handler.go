package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// InvoiceHandler serves levy invoice endpoints.
type InvoiceHandler struct {
	svc *service.InvoiceService
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// List returns a page of invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"status":      c.Query("status"),
		"job_card_id": c.Query("job_card_id"),
		"number":      c.Query("number"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, result)
}

// Get returns one invoice with its levy breakdown.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Invoice ID is required")
		return
	}

	invoice, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Invoice not found")
		return
	}

	Success(c, invoice)
}

// Create raises an invoice on a valued job card.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, invoice)
}

// ListByJobCard returns the invoices raised on a job card.
func (h *InvoiceHandler) ListByJobCard(c *gin.Context) {
	jobCardID := c.Param("id")
	if jobCardID == "" {
		BadRequest(c, "Job card ID is required")
		return
	}

	invoices, err := h.svc.ListByJobCard(c.Request.Context(), jobCardID)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, gin.H{"items": invoices})
}

// Pay settles an invoice and moves its job card to paid.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Invoice ID is required")
		return
	}

	invoice, err := h.svc.MarkPaid(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}

	Success(c, invoice)
}
