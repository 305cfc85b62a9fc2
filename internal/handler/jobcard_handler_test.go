package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/model/entity"
	"github.com/krys2fa/gbrapp-sub001/internal/repository"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
	"github.com/krys2fa/gbrapp-sub001/internal/testutil"
	"gorm.io/gorm"
)

// setupAPITest wires the job card, assay and invoice stack against an
// isolated schema, mirroring the production route table.
func setupAPITest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	testutil.SeedTestUser(t, db, "test-user-001", "Test Admin", "admin@test.com", entity.RoleAdmin)
	testutil.SeedTestExporter(t, db, "exp-001", "EXP-000001", "Golden Field Mines Ltd")
	testutil.SeedTestPrice(t, db, 2000, 25, 12)

	cfg := &config.Config{}
	cfg.Billing.ServiceRatePercent = 0.258
	cfg.Report.MaxRows = 2000

	repos := repository.NewRepositories(db)
	priceSvc := service.NewPriceService(repos.Price, nil, nil)
	jobCardSvc := service.NewJobCardService(repos.JobCard, repos.Exporter)
	assaySvc := service.NewAssayService(repos.Assay, repos.JobCard, priceSvc)
	invoiceSvc := service.NewInvoiceService(repos.Invoice, repos.JobCard, repos.Assay, cfg)
	reportSvc := service.NewReportService(repos.JobCard, repos.Invoice, repos.Exporter, nil, nil, cfg)

	exporterSvc := service.NewExporterService(repos.Exporter)

	exporterHandler := NewExporterHandler(exporterSvc)
	jobCardHandler := NewJobCardHandler(jobCardSvc)
	assayHandler := NewAssayHandler(assaySvc)
	invoiceHandler := NewInvoiceHandler(invoiceSvc)
	priceHandler := NewPriceHandler(priceSvc)
	reportHandler := NewReportHandler(reportSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	exporters := api.Group("/exporters")
	exporters.GET("", exporterHandler.List)
	exporters.GET("/:id", exporterHandler.Get)
	exporters.POST("", exporterHandler.Create)
	exporters.PUT("/:id", exporterHandler.Update)
	exporters.DELETE("/:id", exporterHandler.Delete)

	jobCards := api.Group("/job-cards")
	jobCards.GET("", jobCardHandler.List)
	jobCards.GET("/:id", jobCardHandler.Get)
	jobCards.POST("", jobCardHandler.Create)
	jobCards.PUT("/:id", jobCardHandler.Update)
	jobCards.DELETE("/:id", jobCardHandler.Delete)
	jobCards.GET("/:id/assays", assayHandler.ListByJobCard)
	jobCards.POST("/:id/assays", assayHandler.Create)
	jobCards.GET("/:id/invoices", invoiceHandler.ListByJobCard)

	api.GET("/large-scale/job-cards", jobCardHandler.ListScaled(entity.JobCardScaleLarge))
	api.POST("/large-scale/job-cards", jobCardHandler.CreateScaled(entity.JobCardScaleLarge))
	api.GET("/small-scale/job-cards", jobCardHandler.ListScaled(entity.JobCardScaleSmall))
	api.POST("/small-scale/job-cards", jobCardHandler.CreateScaled(entity.JobCardScaleSmall))

	assays := api.Group("/assays")
	assays.GET("/:assayId", assayHandler.Get)
	assays.DELETE("/:assayId", assayHandler.Delete)
	assays.POST("/:assayId/measurements", assayHandler.AddMeasurement)
	assays.DELETE("/:assayId/measurements/:measurementId", assayHandler.DeleteMeasurement)

	invoices := api.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.POST("", invoiceHandler.Create)
	invoices.POST("/:id/pay", invoiceHandler.Pay)

	prices := api.Group("/daily-prices")
	prices.GET("", priceHandler.List)
	prices.GET("/latest", priceHandler.Latest)
	prices.POST("", priceHandler.Set)
	prices.POST("/refresh", priceHandler.Refresh)
	prices.DELETE("/:id", priceHandler.Delete)

	api.GET("/dashboard", reportHandler.Dashboard)
	api.GET("/reports/download", reportHandler.Download)
	api.GET("/reports/generate-pdf", reportHandler.PrintHTML)

	return router, db
}

func createJobCard(t *testing.T, router *gin.Engine, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	if body == nil {
		body = map[string]interface{}{"exporter_id": "exp-001"}
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/job-cards", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestJobCardCreate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, map[string]interface{}{
		"exporter_id": "exp-001",
		"reference":   "SHIP-2026-001",
		"destination": "Dubai",
	})

	code, ok := card["code"].(string)
	if !ok || !strings.HasPrefix(code, "LS-") {
		t.Errorf("Expected code starting with 'LS-', got %v", card["code"])
	}
	if card["status"] != "pending" {
		t.Errorf("Expected status 'pending', got %v", card["status"])
	}
	if card["scale"] != "large_scale" {
		t.Errorf("Expected scale 'large_scale', got %v", card["scale"])
	}
	if card["reference"] != "SHIP-2026-001" {
		t.Errorf("Expected reference 'SHIP-2026-001', got %v", card["reference"])
	}
}

func TestJobCardCreateSmallScale(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/small-scale/job-cards",
		map[string]interface{}{"exporter_id": "exp-001"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	card := resp["data"].(map[string]interface{})
	code, ok := card["code"].(string)
	if !ok || !strings.HasPrefix(code, "SS-") {
		t.Errorf("Expected code starting with 'SS-', got %v", card["code"])
	}
	if card["scale"] != "small_scale" {
		t.Errorf("Expected scale 'small_scale', got %v", card["scale"])
	}
}

func TestJobCardCreateUnknownExporter(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/job-cards",
		map[string]interface{}{"exporter_id": "no-such-exporter"}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJobCardList(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	createJobCard(t, router, token, nil)
	createJobCard(t, router, token, nil)

	w := testutil.DoRequest(router, "GET", "/api/v1/job-cards", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if total := data["total"].(float64); total != 2 {
		t.Errorf("Expected 2 job cards, got %v", total)
	}
}

func TestJobCardScaleFilter(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	createJobCard(t, router, token, nil)
	testutil.DoRequest(router, "POST", "/api/v1/small-scale/job-cards",
		map[string]interface{}{"exporter_id": "exp-001"}, token)

	w := testutil.DoRequest(router, "GET", "/api/v1/large-scale/job-cards", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if total := data["total"].(float64); total != 1 {
		t.Errorf("Expected 1 large scale card, got %v", total)
	}
}

func TestJobCardUpdate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)

	w := testutil.DoRequest(router, "PUT", "/api/v1/job-cards/"+cardID,
		map[string]interface{}{"destination": "London", "notes": "rush shipment"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["destination"] != "London" {
		t.Errorf("Expected destination 'London', got %v", data["destination"])
	}
}

func TestJobCardDelete(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)

	w := testutil.DoRequest(router, "DELETE", "/api/v1/job-cards/"+cardID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/job-cards/"+cardID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestJobCardImmutableAfterAssay(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)
	createAssay(t, router, token, cardID, nil)

	w := testutil.DoRequest(router, "PUT", "/api/v1/job-cards/"+cardID,
		map[string]interface{}{"destination": "Zurich"}, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 updating assayed card, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/job-cards/"+cardID, nil, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 deleting assayed card, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJobCardUnauthorized(t *testing.T) {
	router, _ := setupAPITest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/job-cards", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
}
