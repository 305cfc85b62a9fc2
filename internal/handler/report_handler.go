package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// ReportHandler serves revenue report downloads and the dashboard.
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Download streams a rendered report. The flag query selects period and
// mode ("weekly-summary", "monthly-comprehensive", ...), format selects
// csv or xlsx.
func (h *ReportHandler) Download(c *gin.Context) {
	flag := c.DefaultQuery("flag", "weekly-summary")
	format := c.DefaultQuery("format", "csv")

	file, err := h.svc.Generate(c.Request.Context(), flag, format)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// PrintHTML renders the printable A4 revenue report for browser
// print-to-PDF.
func (h *ReportHandler) PrintHTML(c *gin.Context) {
	period := c.DefaultQuery("period", "weekly")

	html, err := h.svc.PrintHTML(c.Request.Context(), period)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Dashboard returns the landing page snapshot.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, dash)
}
