package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
)

// LowStockReportHandler godoc
// @Summary Products whose total stock is below the threshold
// @Description Fires one alert per low-stock product through the alert registry and returns the list
// @Tags reports
// @Produce json
// @Param threshold query int true "Stock threshold"
// @Success 200 {object} LowStockReport
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /reports/low-stock [get]
func LowStockReportHandler(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.Atoi(r.URL.Query().Get("threshold"))
	if err != nil {
		http.Error(w, "invalid threshold", http.StatusBadRequest)
		return
	}

	if err := svc.CheckLowStock(threshold); err != nil {
		http.Error(w, "could not run low-stock check", http.StatusInternalServerError)
		return
	}

	products, err := svc.Products()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	report := LowStockReport{Threshold: threshold, Products: []LowStockProduct{}}
	for _, p := range products {
		total, err := svc.TotalStock(p.ID)
		if err != nil {
			continue
		}
		if total < threshold {
			report.Products = append(report.Products, LowStockProduct{
				ProductID:     p.ID,
				Name:          p.Name,
				TotalQuantity: total,
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// ReplenishmentHandler godoc
// @Summary Replenishment recommendations for one location
// @Tags reports
// @Produce json
// @Param location_id query string true "Location ID"
// @Param threshold query int true "Stock threshold"
// @Success 200 {array} models.Recommendation
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /reports/replenishment [get]
func ReplenishmentHandler(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	if strings.TrimSpace(locationID) == "" {
		http.Error(w, "location_id is required", http.StatusBadRequest)
		return
	}
	threshold, err := strconv.Atoi(r.URL.Query().Get("threshold"))
	if err != nil {
		http.Error(w, "invalid threshold", http.StatusBadRequest)
		return
	}

	recs, err := svc.Recommend(locationID, threshold)
	if err != nil {
		http.Error(w, "could not compute recommendations", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}

// PurchasePlansHandler godoc
// @Summary Purchase plans from recent consumption
// @Tags reports
// @Produce json
// @Param batch_size query int true "Fixed purchase batch size"
// @Param threshold query int true "Restock threshold"
// @Success 200 {array} models.PurchasePlan
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /reports/purchase-plans [get]
func PurchasePlansHandler(w http.ResponseWriter, r *http.Request) {
	batchSize, err := strconv.Atoi(r.URL.Query().Get("batch_size"))
	if err != nil || batchSize <= 0 {
		http.Error(w, "invalid batch_size", http.StatusBadRequest)
		return
	}
	threshold, err := strconv.Atoi(r.URL.Query().Get("threshold"))
	if err != nil {
		http.Error(w, "invalid threshold", http.StatusBadRequest)
		return
	}

	source := inventory.NewOperationHistorySource(operationRepo)
	plans, err := svc.GeneratePurchasePlans(source, batchSize, threshold)
	if err != nil {
		http.Error(w, "could not generate purchase plans", http.StatusInternalServerError)
		return
	}
	if plans == nil {
		plans = []models.PurchasePlan{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}
