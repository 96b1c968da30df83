package repo

import (
	"strings"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

// InMemoryCatalogRepository is an in-memory implementation of CatalogRepository.
type InMemoryCatalogRepository struct {
	products []models.Product
}

// NewInMemoryCatalogRepository creates a new instance of InMemoryCatalogRepository.
func NewInMemoryCatalogRepository() *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{
		products: []models.Product{},
	}
}

// Create adds a new product to the catalog. The caller supplies the id.
func (r *InMemoryCatalogRepository) Create(product models.Product) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == product.ID {
			return models.Product{}, ErrDuplicateProduct
		}
	}
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the catalog.
func (r *InMemoryCatalogRepository) GetAll() ([]models.Product, error) {
	return r.products, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryCatalogRepository) GetByID(id string) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.Supplier != "" && !strings.EqualFold(p.Supplier, pf.Supplier) {
		return false
	}
	if pf.MinPrice != nil && p.SellingPrice < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.SellingPrice > *pf.MaxPrice {
		return false
	}
	return true
}

func (r *InMemoryCatalogRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	var filtered []models.Product

	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, 0, nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryCatalogRepository) Clear() {
	r.products = []models.Product{}
}
