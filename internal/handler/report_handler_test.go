package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/krys2fa/gbrapp-sub001/internal/testutil"
)

func TestDashboard(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	cardID := valuedJobCard(t, router, token)
	invoice := createInvoice(t, router, token, cardID)
	invoiceID := invoice["id"].(string)
	testutil.DoRequest(router, "POST", "/api/v1/invoices/"+invoiceID+"/pay", nil, token)

	createJobCard(t, router, token, nil)

	w := testutil.DoRequest(router, "GET", "/api/v1/dashboard", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["job_cards_total"].(float64) != 2 {
		t.Errorf("Expected 2 job cards, got %v", data["job_cards_total"])
	}
	if data["job_cards_pending"].(float64) != 1 {
		t.Errorf("Expected 1 pending card, got %v", data["job_cards_pending"])
	}
	if data["job_cards_paid"].(float64) != 1 {
		t.Errorf("Expected 1 paid card, got %v", data["job_cards_paid"])
	}
	if data["invoices_paid"].(float64) != 1 {
		t.Errorf("Expected 1 paid invoice, got %v", data["invoices_paid"])
	}
	if data["collected_levy_ghs"].(float64) <= 0 {
		t.Errorf("Expected collected levies > 0, got %v", data["collected_levy_ghs"])
	}
	top := data["top_exporters"].([]interface{})
	if len(top) == 0 {
		t.Fatalf("Expected top exporters, got none")
	}
	first := top[0].(map[string]interface{})
	if first["exporter"] != "Golden Field Mines Ltd" {
		t.Errorf("Expected top exporter 'Golden Field Mines Ltd', got %v", first["exporter"])
	}
}

func TestReportDownloadCSV(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	valuedJobCard(t, router, token)

	w := testutil.DoRequest(router, "GET", "/api/v1/reports/download?flag=weekly-summary&format=csv", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv content type, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "weekly-summary") {
		t.Errorf("Expected filename in disposition header, got %q", cd)
	}
	if !strings.Contains(w.Body.String(), "Golden Field Mines Ltd") {
		t.Errorf("Expected exporter row in CSV body:\n%s", w.Body.String())
	}
}

func TestReportDownloadXLSX(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	valuedJobCard(t, router, token)

	w := testutil.DoRequest(router, "GET", "/api/v1/reports/download?flag=monthly-comprehensive&format=xlsx", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	// XLSX is a zip container.
	if body := w.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Errorf("Expected a zip payload, got %d bytes", w.Body.Len())
	}
}

func TestReportDownloadBadFlag(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/reports/download?flag=hourly-summary", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown period, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReportPrintHTML(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	valuedJobCard(t, router, token)

	w := testutil.DoRequest(router, "GET", "/api/v1/reports/generate-pdf?period=weekly", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Export Revenue Report") {
		t.Errorf("Expected report title in HTML")
	}
	if !strings.Contains(body, "Golden Field Mines Ltd") {
		t.Errorf("Expected exporter name in HTML")
	}
}
