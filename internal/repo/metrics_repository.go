package repo

type MostMovedProduct struct {
	Name           string `json:"name"`
	OperationCount int    `json:"operation_count"`
}

type Metrics struct {
	TotalProducts    int              `json:"total_products"`
	TotalOperations  int              `json:"total_operations"`
	LowStockCount    int              `json:"low_stock_count"`
	MostMovedProduct MostMovedProduct `json:"most_moved_product"`
}

type MetricsRepository interface {
	// GetDashboardMetrics aggregates catalog, ledger and history counters.
	// lowStockThreshold decides which products count as low on stock.
	GetDashboardMetrics(lowStockThreshold int) (Metrics, error)
}
