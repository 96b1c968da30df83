package repo

type InMemoryMetricsRepository struct {
	catalogRepo   CatalogRepository
	stockRepo     StockRepository
	operationRepo OperationRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(
	catalogRepo CatalogRepository,
	stockRepo StockRepository,
	operationRepo OperationRepository,
) {
	i.catalogRepo = catalogRepo
	i.stockRepo = stockRepo
	i.operationRepo = operationRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(lowStockThreshold int) (Metrics, error) {
	m := Metrics{}

	products, err := i.catalogRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	for _, product := range products {
		count, err := i.operationRepo.CountFor(product.ID)
		if err != nil {
			return m, err
		}
		m.TotalOperations += count
		if count > m.MostMovedProduct.OperationCount {
			m.MostMovedProduct.Name = product.Name
			m.MostMovedProduct.OperationCount = count
		}

		total, err := i.stockRepo.TotalFor(product.ID)
		if err != nil {
			return m, err
		}
		if total < lowStockThreshold {
			m.LowStockCount++
		}
	}

	return m, nil
}
