// Package inventory orchestrates the catalog, the location stock ledger,
// the operation history and the alert registry.
package inventory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/alert"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

// ErrInvalidQuantity is returned for non-positive transfer quantities.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Service owns the stock ledger and the operation history. The catalog is
// shared read-only with reporting collaborators.
type Service struct {
	catalog repo.CatalogRepository
	stock   repo.StockRepository
	history repo.OperationRepository
	alerts  *alert.Registry

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(catalog repo.CatalogRepository, stock repo.StockRepository, history repo.OperationRepository, alerts *alert.Registry) *Service {
	return &Service{
		catalog: catalog,
		stock:   stock,
		history: history,
		alerts:  alerts,
		locks:   map[string]*sync.Mutex{},
	}
}

// lockFor returns the mutex guarding one product's ledger cells. Transfers
// hold it across both adjustments so no caller observes the debited-but-not-
// credited intermediate state.
func (s *Service) lockFor(productID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[productID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[productID] = l
	}
	return l
}

// AddProduct inserts a catalog entry and records an ADD_ITEM operation.
func (s *Service) AddProduct(p models.Product) (models.Product, error) {
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().Format(time.RFC3339)
	}
	created, err := s.catalog.Create(p)
	if err != nil {
		return models.Product{}, err
	}

	_ = s.history.Log(models.Operation{
		Kind:      models.OpAddItem,
		ProductID: created.ID,
		Delta:     0,
		Note:      fmt.Sprintf("added product %s", created.Name),
	})
	return created, nil
}

// Product returns the catalog entry for an id.
func (s *Service) Product(id string) (models.Product, error) {
	return s.catalog.GetByID(id)
}

// Products returns every catalog entry.
func (s *Service) Products() ([]models.Product, error) {
	return s.catalog.GetAll()
}

// AdjustStock applies a signed delta at one location and records an
// UPDATE_STOCK operation. The product must exist; a delta that would drive
// the quantity negative fails with repo.ErrInsufficientStock and leaves the
// ledger unchanged.
func (s *Service) AdjustStock(locationID, productID string, delta int) (int, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return 0, err
	}

	l := s.lockFor(productID)
	l.Lock()
	defer l.Unlock()

	newQty, err := s.stock.Adjust(locationID, productID, delta)
	if err != nil {
		return 0, err
	}

	_ = s.history.Log(models.Operation{
		Kind:      models.OpUpdateStock,
		ProductID: productID,
		Delta:     delta,
		Note:      fmt.Sprintf("stock adjusted at %s", locationID),
	})
	return newQty, nil
}

// QuantityAt reads a product's quantity at one location. An untracked
// (product, location) pair reads as zero.
func (s *Service) QuantityAt(locationID, productID string) (int, error) {
	return s.stock.QuantityAt(locationID, productID)
}

// TotalStock sums a product's quantity across all locations.
func (s *Service) TotalStock(productID string) (int, error) {
	return s.stock.TotalFor(productID)
}

// StockLevels returns the per-location breakdown for a product.
func (s *Service) StockLevels(productID string) ([]models.StockEntry, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return nil, err
	}
	return s.stock.LevelsFor(productID)
}

// Transfer moves quantity units of a product between locations. The debit
// and credit happen under the product lock, so the pair is all-or-nothing:
// if the source lacks stock the destination is never touched.
func (s *Service) Transfer(fromLocation, toLocation, productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := s.catalog.GetByID(productID); err != nil {
		return err
	}

	l := s.lockFor(productID)
	l.Lock()
	defer l.Unlock()

	if _, err := s.stock.Adjust(fromLocation, productID, -quantity); err != nil {
		return err
	}
	if _, err := s.stock.Adjust(toLocation, productID, quantity); err != nil {
		// Restore the source so the failed transfer leaves no partial effect.
		_, _ = s.stock.Adjust(fromLocation, productID, quantity)
		return err
	}

	_ = s.history.Log(models.Operation{
		Kind:      models.OpTransfer,
		ProductID: productID,
		Delta:     quantity,
		Note:      fmt.Sprintf("transferred %d from %s to %s", quantity, fromLocation, toLocation),
	})
	return nil
}

// CheckLowStock fires one alert for every product whose total stock across
// locations is below threshold. Alerts are fire-and-forget: repeated calls
// with the same stock levels re-fire, and nothing is retried.
func (s *Service) CheckLowStock(threshold int) error {
	products, err := s.catalog.GetAll()
	if err != nil {
		return err
	}

	for _, p := range products {
		total, err := s.stock.TotalFor(p.ID)
		if err != nil {
			continue
		}
		if total < threshold {
			s.alerts.Notify(fmt.Sprintf("Product %s (%s) is low on stock: %d units left, threshold %d",
				p.ID, p.Name, total, threshold))
		}
	}
	return nil
}

// HistoryFor returns the product's operation records in insertion order.
func (s *Service) HistoryFor(productID string, of repo.OperationFilter) ([]models.Operation, int, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return nil, 0, err
	}
	return s.history.GetByProductID(productID, of)
}
