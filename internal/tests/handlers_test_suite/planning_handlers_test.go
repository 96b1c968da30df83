package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	api "github.com/rogerio-castellano/stockroom/internal/http"
	handler "github.com/rogerio-castellano/stockroom/internal/http/handlers"
	"github.com/rogerio-castellano/stockroom/internal/models"
)

func TestLowStockReportHandler(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})
	createProduct(r, handler.ProductRequest{Id: "ITM002", Name: "Chips", SellingPrice: 2.0})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 5})
	adjustStock(r, "ITM002", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 50})

	var mu sync.Mutex
	var received []string
	id := alerts.Register(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, msg)
	})
	t.Cleanup(func() { alerts.Unregister(id) })

	req := httptest.NewRequest(http.MethodGet, "/reports/low-stock?threshold=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var report handler.LowStockReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("error decoding report: %v", err)
	}
	if len(report.Products) != 1 {
		t.Fatalf("expected 1 low-stock product, got %d", len(report.Products))
	}
	if report.Products[0].ProductID != "ITM001" || report.Products[0].TotalQuantity != 5 {
		t.Errorf("unexpected low-stock entry: %+v", report.Products[0])
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(received))
	}
}

func TestLowStockReportHandler_InvalidThreshold(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/reports/low-stock?threshold=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestReplenishmentHandler(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", Supplier: "ACME", SellingPrice: 3.5})
	createProduct(r, handler.ProductRequest{Id: "ITM002", Name: "Chips", SellingPrice: 2.0})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 5})
	adjustStock(r, "ITM002", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 40})

	req := httptest.NewRequest(http.MethodGet, "/reports/replenishment?location_id=STORE001&threshold=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var recs []models.Recommendation
	if err := json.NewDecoder(w.Body).Decode(&recs); err != nil {
		t.Fatalf("error decoding recommendations: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	// 1.5 * 10 = 15, minus the 5 on hand.
	if recs[0].ProductID != "ITM001" || recs[0].RecommendedQuantity != 10 {
		t.Errorf("unexpected recommendation: %+v", recs[0])
	}
	if recs[0].Supplier != "ACME" {
		t.Errorf("expected supplier ACME, got %s", recs[0].Supplier)
	}
}

func TestReplenishmentHandler_MissingLocation(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/reports/replenishment?threshold=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestPurchasePlansHandler(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 150})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: -120})

	// Consumption of 120 over the 30-day window is 4/day; stock is 30,
	// so the threshold of 50 is reached in ceil(20/4) = 5 days.
	req := httptest.NewRequest(http.MethodGet, "/reports/purchase-plans?batch_size=40&threshold=50", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var plans []models.PurchasePlan
	if err := json.NewDecoder(w.Body).Decode(&plans); err != nil {
		t.Fatalf("error decoding plans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 purchase plan, got %d", len(plans))
	}
	if plans[0].ProductID != "ITM001" || plans[0].BatchSize != 40 {
		t.Errorf("unexpected plan: %+v", plans[0])
	}
	wantDate := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	if plans[0].RestockDate != wantDate {
		t.Errorf("expected restock date %s, got %s", wantDate, plans[0].RestockDate)
	}
}

func TestPurchasePlansHandler_NoConsumption(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 100})

	req := httptest.NewRequest(http.MethodGet, "/reports/purchase-plans?batch_size=40&threshold=200", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var plans []models.PurchasePlan
	if err := json.NewDecoder(w.Body).Decode(&plans); err != nil {
		t.Fatalf("error decoding plans: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("expected no plans without consumption, got %d", len(plans))
	}
}

func TestPurchasePlansHandler_InvalidBatchSize(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/reports/purchase-plans?batch_size=0&threshold=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}
