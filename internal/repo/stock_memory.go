package repo

import (
	"github.com/rogerio-castellano/stockroom/internal/models"
)

// InMemoryStockRepository is an in-memory implementation of StockRepository.
type InMemoryStockRepository struct {
	entries []models.StockEntry
}

func NewInMemoryStockRepository() *InMemoryStockRepository {
	return &InMemoryStockRepository{
		entries: []models.StockEntry{},
	}
}

// Adjust applies a signed delta to the (product, location) cell.
func (r *InMemoryStockRepository) Adjust(locationID, productID string, delta int) (int, error) {
	for i, e := range r.entries {
		if e.LocationID == locationID && e.ProductID == productID {
			if e.Quantity+delta < 0 {
				return 0, ErrInsufficientStock
			}
			r.entries[i].Quantity += delta
			return r.entries[i].Quantity, nil
		}
	}

	// No entry yet: current quantity is zero.
	if delta < 0 {
		return 0, ErrInsufficientStock
	}
	r.entries = append(r.entries, models.StockEntry{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   delta,
	})
	return delta, nil
}

func (r *InMemoryStockRepository) QuantityAt(locationID, productID string) (int, error) {
	for _, e := range r.entries {
		if e.LocationID == locationID && e.ProductID == productID {
			return e.Quantity, nil
		}
	}
	return 0, nil
}

func (r *InMemoryStockRepository) TotalFor(productID string) (int, error) {
	total := 0
	for _, e := range r.entries {
		if e.ProductID == productID {
			total += e.Quantity
		}
	}
	return total, nil
}

func (r *InMemoryStockRepository) LevelsFor(productID string) ([]models.StockEntry, error) {
	var levels []models.StockEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			levels = append(levels, e)
		}
	}
	return levels, nil
}

func (r *InMemoryStockRepository) Clear() {
	r.entries = []models.StockEntry{}
}
