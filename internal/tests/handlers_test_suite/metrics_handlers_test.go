package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/stockroom/internal/http"
	handler "github.com/rogerio-castellano/stockroom/internal/http/handlers"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

func TestGetDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})
	createProduct(r, handler.ProductRequest{Id: "ITM002", Name: "Chips", SellingPrice: 2.0})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: 100})
	adjustStock(r, "ITM001", handler.StockAdjustmentRequest{LocationID: "STORE001", Delta: -20})

	w := doJSON(r, http.MethodGet, "/metrics/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var m repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("error decoding metrics: %v", err)
	}
	if m.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", m.TotalProducts)
	}
	// Two ADD_ITEM entries plus two UPDATE_STOCK entries.
	if m.TotalOperations != 4 {
		t.Errorf("expected 4 operations, got %d", m.TotalOperations)
	}
	// ITM002 has no stock anywhere, so it counts as low with the default threshold.
	if m.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock product, got %d", m.LowStockCount)
	}
	if m.MostMovedProduct.Name != "Cola" {
		t.Errorf("expected Cola as most moved, got %s", m.MostMovedProduct.Name)
	}
	if m.MostMovedProduct.OperationCount != 3 {
		t.Errorf("expected 3 operations for most moved, got %d", m.MostMovedProduct.OperationCount)
	}
}

func TestGetDashboardMetricsHandler_Forbidden(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	// A freshly registered user has the plain "user" role.
	doJSON(r, http.MethodPost, "/register", handler.CredentialsRequest{
		Username: "viewer",
		Password: "secret-password",
	})
	viewerToken, err := generateToken(r, "viewer", "secret-password")
	if err != nil {
		t.Fatalf("error logging in as viewer: %v", err)
	}

	oldToken := token
	token = viewerToken
	defer func() { token = oldToken }()

	w := doJSON(r, http.MethodGet, "/metrics/dashboard", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden, got %d", w.Code)
	}
}
