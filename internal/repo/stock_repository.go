package repo

import "github.com/rogerio-castellano/stockroom/internal/models"

// StockRepository is the per-(product, location) quantity ledger.
type StockRepository interface {
	// Adjust applies a signed delta at one location and returns the new
	// quantity. It fails with ErrInsufficientStock, leaving the ledger
	// unchanged, when the result would be negative.
	Adjust(locationID, productID string, delta int) (int, error)

	// QuantityAt returns the quantity of a product at one location.
	// An absent entry means zero stock, not an error.
	QuantityAt(locationID, productID string) (int, error)

	// TotalFor sums a product's quantity across every location.
	TotalFor(productID string) (int, error)

	// LevelsFor returns the per-location breakdown for a product.
	LevelsFor(productID string) ([]models.StockEntry, error)
}
