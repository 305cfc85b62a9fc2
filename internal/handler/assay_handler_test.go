package handler

import (
	"math"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/testutil"
)

func createAssay(t *testing.T, router *gin.Engine, token, jobCardID string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	if body == nil {
		body = map[string]interface{}{
			"method": "X_RAY",
			"measurements": []map[string]interface{}{
				{"gross_weight": 100.0, "gold_assay_pct": 92.0},
			},
		}
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/job-cards/"+jobCardID+"/assays", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func approx(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

func TestAssayCreateWithDailyPrices(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)

	// Seeded daily price: gold $2000/oz, exchange rate 12 GHS/USD.
	// 100g at 92% fineness is 92g net = 2.95787 troy oz.
	assay := createAssay(t, router, token, cardID, nil)

	if got := assay["gold_price_usd"].(float64); got != 2000 {
		t.Errorf("Expected gold price snapshot 2000, got %v", got)
	}
	if got := assay["exchange_rate"].(float64); got != 12 {
		t.Errorf("Expected exchange rate snapshot 12, got %v", got)
	}
	if got := assay["total_net_gold_weight_oz"].(float64); !approx(got, 2.95787, 0.001) {
		t.Errorf("Expected ~2.95787 oz, got %v", got)
	}
	if got := assay["total_gold_value_usd"].(float64); !approx(got, 5915.74, 1) {
		t.Errorf("Expected ~5915.74 USD, got %v", got)
	}
	if got := assay["total_value_ghs"].(float64); !approx(got, 70988.9, 5) {
		t.Errorf("Expected ~70988.9 GHS, got %v", got)
	}

	measurements := assay["measurements"].([]interface{})
	if len(measurements) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(measurements))
	}
	m := measurements[0].(map[string]interface{})
	if m["piece_index"].(float64) != 1 {
		t.Errorf("Expected piece index 1, got %v", m["piece_index"])
	}
	if m["unit"] != "g" {
		t.Errorf("Expected unit 'g', got %v", m["unit"])
	}
}

func TestAssayCreatePriceOverride(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)

	assay := createAssay(t, router, token, cardID, map[string]interface{}{
		"method":         "WATER_DENSITY",
		"gold_price_usd": 2500.0,
		"exchange_rate":  15.0,
		"measurements": []map[string]interface{}{
			{"gross_weight": 1.0, "unit": "kg", "gold_assay_pct": 90.0},
		},
	})

	if got := assay["gold_price_usd"].(float64); got != 2500 {
		t.Errorf("Expected overridden gold price 2500, got %v", got)
	}
	// 1kg at 90% = 900g net = 28.9356 oz, $72,338.9, GHS 1,085,083.
	if got := assay["total_net_gold_weight_oz"].(float64); !approx(got, 28.9356, 0.01) {
		t.Errorf("Expected ~28.9356 oz, got %v", got)
	}
	if got := assay["total_value_ghs"].(float64); !approx(got, 1085083, 50) {
		t.Errorf("Expected ~1085083 GHS, got %v", got)
	}
}

func TestAssayRollsUpJobCard(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)
	createAssay(t, router, token, cardID, nil)

	w := testutil.DoRequest(router, "GET", "/api/v1/job-cards/"+cardID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != "completed" {
		t.Errorf("Expected status 'completed' after assay, got %v", data["status"])
	}
	if assays := data["assays"].([]interface{}); len(assays) != 1 {
		t.Errorf("Expected 1 assay on job card, got %d", len(assays))
	}
	if got := data["total_value_ghs"].(float64); !approx(got, 70988.9, 5) {
		t.Errorf("Expected ~70988.9 GHS on job card, got %v", got)
	}
	if got := data["total_gross_weight"].(float64); got != 100 {
		t.Errorf("Expected gross weight 100, got %v", got)
	}
}

func TestAssayInvalidMethod(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)

	w := testutil.DoRequest(router, "POST", "/api/v1/job-cards/"+cardID+"/assays",
		map[string]interface{}{
			"method": "GUESSWORK",
			"measurements": []map[string]interface{}{
				{"gross_weight": 100.0, "gold_assay_pct": 92.0},
			},
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid method, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAssayAddMeasurement(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)
	assay := createAssay(t, router, token, cardID, nil)
	assayID := assay["id"].(string)

	w := testutil.DoRequest(router, "POST", "/api/v1/assays/"+assayID+"/measurements",
		map[string]interface{}{"gross_weight": 50.0, "gold_assay_pct": 80.0}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	measurements := data["measurements"].([]interface{})
	if len(measurements) != 2 {
		t.Fatalf("Expected 2 measurements, got %d", len(measurements))
	}
	// 92g + 40g net = 132g = 4.24389 oz.
	if got := data["total_net_gold_weight_oz"].(float64); !approx(got, 4.24389, 0.001) {
		t.Errorf("Expected ~4.24389 oz after second piece, got %v", got)
	}
}

func TestAssayDeleteLastMeasurementRejected(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)
	assay := createAssay(t, router, token, cardID, nil)
	assayID := assay["id"].(string)
	m := assay["measurements"].([]interface{})[0].(map[string]interface{})
	measurementID := m["id"].(string)

	w := testutil.DoRequest(router, "DELETE",
		"/api/v1/assays/"+assayID+"/measurements/"+measurementID, nil, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 deleting the only measurement, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAssayDeleteRevertsJobCard(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	card := createJobCard(t, router, token, nil)
	cardID := card["id"].(string)
	assay := createAssay(t, router, token, cardID, nil)
	assayID := assay["id"].(string)

	w := testutil.DoRequest(router, "DELETE", "/api/v1/assays/"+assayID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/job-cards/"+cardID, nil, token)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != "pending" {
		t.Errorf("Expected status back to 'pending', got %v", data["status"])
	}
	if assays, ok := data["assays"].([]interface{}); ok && len(assays) != 0 {
		t.Errorf("Expected no assays after delete, got %d", len(assays))
	}
	if data["total_value_ghs"].(float64) != 0 {
		t.Errorf("Expected zero value after assay delete, got %v", data["total_value_ghs"])
	}
}
