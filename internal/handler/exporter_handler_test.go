package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/krys2fa/gbrapp-sub001/internal/testutil"
)

func TestExporterCreate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/exporters", map[string]interface{}{
		"name":                 "Ashanti Traders Ltd",
		"type":                 "large_scale",
		"authorized_signatory": "K. Mensah",
		"email":                "ops@ashantitraders.example",
		"contact_info":         map[string]interface{}{"city": "Kumasi"},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	code, ok := data["code"].(string)
	if !ok || !strings.HasPrefix(code, "EXP-") {
		t.Errorf("Expected code starting with 'EXP-', got %v", data["code"])
	}
	if data["name"] != "Ashanti Traders Ltd" {
		t.Errorf("Expected name 'Ashanti Traders Ltd', got %v", data["name"])
	}
	if data["type"] != "large_scale" {
		t.Errorf("Expected type 'large_scale', got %v", data["type"])
	}
}

func TestExporterCreateDefaultsType(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/exporters",
		map[string]interface{}{"name": "Plain Gold Ltd"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["type"] != "gold" {
		t.Errorf("Expected default type 'gold', got %v", data["type"])
	}
}

func TestExporterCreateMissingName(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/exporters",
		map[string]interface{}{"type": "gold"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without name, got %d", w.Code)
	}
}

func TestExporterListKeyword(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	testutil.DoRequest(router, "POST", "/api/v1/exporters",
		map[string]interface{}{"name": "Volta Metals"}, token)

	w := testutil.DoRequest(router, "GET", "/api/v1/exporters?keyword=volta", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if total := data["total"].(float64); total != 1 {
		t.Errorf("Expected 1 match for 'volta', got %v", total)
	}
}

func TestExporterUpdate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "PUT", "/api/v1/exporters/exp-001",
		map[string]interface{}{"phone": "+233200000000"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["phone"] != "+233200000000" {
		t.Errorf("Expected updated phone, got %v", data["phone"])
	}
	if data["name"] != "Golden Field Mines Ltd" {
		t.Errorf("Expected name untouched, got %v", data["name"])
	}
}

func TestExporterDeleteBlockedByJobCards(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	createJobCard(t, router, token, nil)

	w := testutil.DoRequest(router, "DELETE", "/api/v1/exporters/exp-001", nil, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 deleting exporter with job cards, got %d: %s", w.Code, w.Body.String())
	}
}

func TestExporterDelete(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "DELETE", "/api/v1/exporters/exp-001", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/exporters/exp-001", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}
