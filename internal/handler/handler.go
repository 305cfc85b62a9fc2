package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// Handlers is the HTTP handler collection.
type Handlers struct {
	Auth     *AuthHandler
	Exporter *ExporterHandler
	JobCard  *JobCardHandler
	Assay    *AssayHandler
	Invoice  *InvoiceHandler
	Price    *PriceHandler
	Report   *ReportHandler
}

func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(svc.Auth, cfg),
		Exporter: NewExporterHandler(svc.Exporter),
		JobCard:  NewJobCardHandler(svc.JobCard),
		Assay:    NewAssayHandler(svc.Assay),
		Invoice:  NewInvoiceHandler(svc.Invoice),
		Price:    NewPriceHandler(svc.Price),
		Report:   NewReportHandler(svc.Report),
	}
}

// Response is the common JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope. The HTTP status is the leading three
// digits of the business code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// serviceError maps a wrapped service error to the closest envelope.
func serviceError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		NotFound(c, msg)
	case strings.Contains(msg, "cannot"), strings.Contains(msg, "already"),
		strings.Contains(msg, "must"), strings.Contains(msg, "has no"):
		Conflict(c, msg)
	default:
		InternalError(c, msg)
	}
}

// GetUserID reads the authenticated user id set by the JWT middleware.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query parameters with bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
