package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	repo "github.com/rogerio-castellano/stockroom/internal/repo"
)

// AdjustStockHandler godoc
// @Summary Adjust stock of a product at one location
// @Tags stock
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param adjustment body StockAdjustmentRequest true "Location and signed quantity change"
// @Success 200 {object} StockAdjustmentResponse
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Router /products/{id}/adjust [post]
// @Security BearerAuth
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req StockAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.LocationID) == "" {
		http.Error(w, "location_id is required", http.StatusBadRequest)
		return
	}

	newQty, err := svc.AdjustStock(req.LocationID, id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "quantity cannot be negative", http.StatusConflict)
		default:
			http.Error(w, "could not update quantity", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StockAdjustmentResponse{
		ProductID:  id,
		LocationID: req.LocationID,
		Quantity:   newQty,
	})
}

// GetStockLevelsHandler godoc
// @Summary Per-location stock levels and total for a product
// @Tags stock
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} StockLevelsResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/stock [get]
func GetStockLevelsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	levels, err := svc.StockLevels(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch stock levels", http.StatusInternalServerError)
		return
	}

	resp := StockLevelsResponse{ProductID: id, Locations: []LocationQuantity{}}
	for _, e := range levels {
		resp.Locations = append(resp.Locations, LocationQuantity{LocationID: e.LocationID, Quantity: e.Quantity})
		resp.Total += e.Quantity
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// TransferHandler godoc
// @Summary Transfer stock between locations
// @Tags stock
// @Accept json
// @Produce json
// @Param transfer body TransferRequest true "Transfer to perform"
// @Success 200 {object} TransferResponse
// @Failure 400 {string} string "Invalid transfer"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Router /transfers [post]
// @Security BearerAuth
func TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.FromLocationID) == "" || strings.TrimSpace(req.ToLocationID) == "" {
		http.Error(w, "from_location_id and to_location_id are required", http.StatusBadRequest)
		return
	}

	err := svc.Transfer(req.FromLocationID, req.ToLocationID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidQuantity):
			http.Error(w, "quantity must be positive", http.StatusBadRequest)
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "insufficient stock at source location", http.StatusConflict)
		default:
			http.Error(w, "could not transfer stock", http.StatusInternalServerError)
		}
		return
	}

	fromQty, _ := svc.QuantityAt(req.FromLocationID, req.ProductID)
	toQty, _ := svc.QuantityAt(req.ToLocationID, req.ProductID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TransferResponse{
		ProductID:      req.ProductID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       req.Quantity,
		FromQuantity:   fromQty,
		ToQuantity:     toQty,
	})
}

// GetOperationsHandler godoc
// @Summary Get a product's operation history
// @Tags operations
// @Produce json
// @Param id path string true "Product ID"
// @Param kind query string false "Operation kind (ADD_ITEM, UPDATE_STOCK, TRANSFER)"
// @Param since query string false "Filter operations from this timestamp (RFC3339)"
// @Param until query string false "Filter operations until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} OperationsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/operations [get]
func GetOperationsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	of, err := operationFilterParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	operations, total, err := svc.HistoryFor(id, of)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("could not retrieve operations for product %s: %v", id, err)
		http.Error(w, "could not retrieve operations", http.StatusInternalServerError)
		return
	}

	response := OperationsSearchResult{
		Data: make([]OperationResponse, len(operations)),
		Meta: Meta{TotalCount: total},
	}
	for i, op := range operations {
		response.Data[i] = toOperationResponse(op)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ExportOperationsHandler godoc
// @Summary Export a product's operation history
// @Tags operations
// @Produce text/csv, application/json
// @Param id path string true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/operations/export [get]
func ExportOperationsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	of, err := operationFilterParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	of.Offset, of.Limit = nil, nil

	operations, _, err := svc.HistoryFor(id, of)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve operations", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="operations.json"`)
		json.NewEncoder(w).Encode(operations)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="operations.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "kind", "product_id", "delta", "note", "created_at"})
		for _, op := range operations {
			_ = csvWriter.Write([]string{
				strconv.Itoa(op.ID),
				string(op.Kind),
				op.ProductID,
				strconv.Itoa(op.Delta),
				op.Note,
				op.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}

func toOperationResponse(op models.Operation) OperationResponse {
	return OperationResponse{
		ID:        op.ID,
		Kind:      string(op.Kind),
		ProductID: op.ProductID,
		Delta:     op.Delta,
		Note:      op.Note,
		CreatedAt: op.CreatedAt,
	}
}

func operationFilterParams(r *http.Request) (repo.OperationFilter, error) {
	var of repo.OperationFilter

	of.Kind = models.OperationKind(r.URL.Query().Get("kind"))

	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	// Reverse the substitution from + for space in the date parameters,
	// otherwise time.Parse fails: URL query decoding turns + into a space.
	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	if sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return of, errors.New("invalid since date format")
		}
		of.Since = &ts
	}
	if untilStr != "" {
		ts, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			return of, errors.New("invalid until date format")
		}
		of.Until = &ts
	}

	var err error
	of.Offset, of.Limit, err = paginationParams(r)
	return of, err
}
