package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/stockroom/internal/http"
	handler "github.com/rogerio-castellano/stockroom/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{
		Id:           "ITM001",
		Name:         "Cola",
		Category:     "beverages",
		Supplier:     "ACME",
		CostPrice:    2.0,
		SellingPrice: 3.5,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Id != "ITM001" {
		t.Errorf("expected id 'ITM001', got %v", resp.Id)
	}
	if resp.Name != "Cola" {
		t.Errorf("expected name 'Cola', got %v", resp.Name)
	}
	if resp.SellingPrice != 3.5 {
		t.Errorf("expected selling price 3.5, got %v", resp.SellingPrice)
	}
}

func TestCreateProductHandler_Duplicate(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	first := createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", first.Code)
	}

	second := createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola again", SellingPrice: 4.0})
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", second.Code)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectCode     int
		expectedErrors []string
	}{
		{
			name:           "Empty id and name",
			payload:        handler.ProductRequest{SellingPrice: 1.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Id", "Name"},
		},
		{
			name:           "Missing selling price",
			payload:        handler.ProductRequest{Id: "ITM001", Name: "Cola"},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"SellingPrice"},
		},
		{
			name:           "Negative cost price",
			payload:        handler.ProductRequest{Id: "ITM001", Name: "Cola", CostPrice: -1, SellingPrice: 2},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"CostPrice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			var resp []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	badJSON := `{Id: "ITM001" Name: "Invalid"}` // missing commas and quotes
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestCreateProductHandler_Unauthorized(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	body, _ := json.Marshal(handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 Unauthorized, got %d", w.Code)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", SellingPrice: 3.5})

	req := httptest.NewRequest(http.MethodGet, "/products/ITM001", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Cola" {
		t.Errorf("expected name 'Cola', got %v", resp.Name)
	}
}

func TestGetProductByIDHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/products/NOPE", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestSearchProductsHandler(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Id: "ITM001", Name: "Cola", Category: "beverages", SellingPrice: 3.5})
	createProduct(r, handler.ProductRequest{Id: "ITM002", Name: "Chips", Category: "snacks", SellingPrice: 2.0})

	req := httptest.NewRequest(http.MethodGet, "/products/search?category=beverages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 1 {
		t.Errorf("expected total 1, got %d", resp.Meta.TotalCount)
	}
	if len(resp.Data) != 1 || resp.Data[0].Id != "ITM001" {
		t.Errorf("unexpected search result: %+v", resp.Data)
	}
}

func TestSearchProductsHandler_InvalidLimit(t *testing.T) {
	t.Cleanup(clearAllInventory)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/products/search?limit=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}
