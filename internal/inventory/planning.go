package inventory

import (
	"math"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

const (
	// maxHistoryDays is the consumption window for purchase planning.
	maxHistoryDays = 30

	// planningHorizonDays bounds how far out a purchase plan may be dated.
	planningHorizonDays = 7
)

// ConsumptionRecord is one signed stock change observed in the past.
type ConsumptionRecord struct {
	Date            time.Time
	QuantityChanged int
}

// HistorySource supplies past consumption records for purchase planning.
// An empty result is valid and means no observed consumption.
type HistorySource interface {
	GetRecords(productID string, maxDays int) ([]ConsumptionRecord, error)
}

// Recommend lists products whose stock at the location is at or below the
// threshold, each with a suggested restock amount of 1.5x the threshold
// (truncated) minus the current quantity.
func (s *Service) Recommend(locationID string, threshold int) ([]models.Recommendation, error) {
	products, err := s.catalog.GetAll()
	if err != nil {
		return nil, err
	}

	var recs []models.Recommendation
	for _, p := range products {
		current, err := s.stock.QuantityAt(locationID, p.ID)
		if err != nil {
			return nil, err
		}
		if current > threshold {
			continue
		}
		recs = append(recs, models.Recommendation{
			ProductID:           p.ID,
			Name:                p.Name,
			CurrentQuantity:     current,
			RecommendedQuantity: int(float64(threshold)*1.5) - current,
			Supplier:            p.Supplier,
		})
	}
	return recs, nil
}

// GeneratePurchasePlans projects, for each product, how many days remain
// until total stock falls to the threshold at the observed consumption rate,
// and emits a fixed-size purchase batch dated that many days out when the
// date lands inside the planning horizon. Products with no observed
// consumption contribute no plan.
func (s *Service) GeneratePurchasePlans(source HistorySource, batchSize, threshold int) ([]models.PurchasePlan, error) {
	products, err := s.catalog.GetAll()
	if err != nil {
		return nil, err
	}

	var plans []models.PurchasePlan
	for _, p := range products {
		records, err := source.GetRecords(p.ID, maxHistoryDays)
		if err != nil {
			return nil, err
		}

		consumed := 0
		for _, rec := range records {
			if rec.QuantityChanged < 0 {
				consumed += -rec.QuantityChanged
			}
		}
		avgDailyConsumption := float64(consumed) / float64(maxHistoryDays)
		if avgDailyConsumption == 0 {
			continue
		}

		current, err := s.stock.TotalFor(p.ID)
		if err != nil {
			return nil, err
		}

		// Negative values (stock already above threshold) are compared
		// against the horizon as-is, not clamped.
		daysToRestock := int(math.Ceil(float64(threshold-current) / avgDailyConsumption))
		if daysToRestock > planningHorizonDays {
			continue
		}

		plans = append(plans, models.PurchasePlan{
			ProductID:   p.ID,
			Name:        p.Name,
			BatchSize:   batchSize,
			RestockDate: time.Now().AddDate(0, 0, daysToRestock).Format("2006-01-02"),
		})
	}
	return plans, nil
}

// OperationHistorySource reads consumption from the operation history log.
// Only UPDATE_STOCK records count; transfers move stock between locations
// without consuming any.
type OperationHistorySource struct {
	history repo.OperationRepository
}

func NewOperationHistorySource(history repo.OperationRepository) *OperationHistorySource {
	return &OperationHistorySource{history: history}
}

func (s *OperationHistorySource) GetRecords(productID string, maxDays int) ([]ConsumptionRecord, error) {
	since := time.Now().AddDate(0, 0, -maxDays)
	ops, _, err := s.history.GetByProductID(productID, repo.OperationFilter{
		Kind:  models.OpUpdateStock,
		Since: &since,
	})
	if err != nil {
		return nil, err
	}

	var records []ConsumptionRecord
	for _, op := range ops {
		date, err := time.Parse(time.RFC3339, op.CreatedAt)
		if err != nil {
			continue
		}
		records = append(records, ConsumptionRecord{Date: date, QuantityChanged: op.Delta})
	}
	return records, nil
}
