package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/krys2fa/gbrapp-sub001/internal/testutil"
)

func TestPriceSetAndLatest(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	tomorrow := time.Now().AddDate(0, 0, 1).UTC().Truncate(24 * time.Hour)
	w := testutil.DoRequest(router, "POST", "/api/v1/daily-prices", map[string]interface{}{
		"date":             tomorrow.Format(time.RFC3339),
		"gold_price_usd":   2100.0,
		"silver_price_usd": 26.5,
		"exchange_rate":    12.5,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["gold_price_usd"].(float64) != 2100 {
		t.Errorf("Expected gold price 2100, got %v", data["gold_price_usd"])
	}
	if data["source"] != "manual" {
		t.Errorf("Expected source 'manual', got %v", data["source"])
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/daily-prices/latest", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["gold_price_usd"].(float64) != 2100 {
		t.Errorf("Expected latest gold price 2100, got %v", data["gold_price_usd"])
	}
}

func TestPriceSetOverwritesSameDate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	day := time.Now().AddDate(0, 0, 1).UTC().Truncate(24 * time.Hour)
	body := map[string]interface{}{
		"date":           day.Format(time.RFC3339),
		"gold_price_usd": 2100.0,
		"exchange_rate":  12.5,
	}
	testutil.DoRequest(router, "POST", "/api/v1/daily-prices", body, token)

	body["gold_price_usd"] = 2150.0
	w := testutil.DoRequest(router, "POST", "/api/v1/daily-prices", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["gold_price_usd"].(float64) != 2150 {
		t.Errorf("Expected overwritten gold price 2150, got %v", data["gold_price_usd"])
	}
}

func TestPriceSetRejectsZeroRate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/daily-prices", map[string]interface{}{
		"date":           time.Now().UTC().Format(time.RFC3339),
		"gold_price_usd": 2100.0,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without exchange rate, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPriceListInvalidDate(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/daily-prices?from=yesterday", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed from date, got %d", w.Code)
	}
}

func TestPriceRefreshWithoutFeed(t *testing.T) {
	router, _ := setupAPITest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/daily-prices/refresh", nil, token)
	if w.Code == http.StatusOK {
		t.Errorf("Expected refresh to fail without a configured feed, got %d", w.Code)
	}
}
