package repo

import "github.com/rogerio-castellano/stockroom/internal/models"

// CatalogRepository defines the interface for product catalog operations.
// Products are create-only; there is no update or delete.
type CatalogRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id string) (models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
}
