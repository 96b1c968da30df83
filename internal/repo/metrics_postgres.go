package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(lowStockThreshold int) (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations`).Scan(&m.TotalOperations)
	_ = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM products p
		WHERE (SELECT COALESCE(SUM(s.quantity), 0) FROM stock_entries s WHERE s.product_id = p.id) < $1
	`, lowStockThreshold).Scan(&m.LowStockCount)

	_ = r.db.QueryRowContext(ctx, `
		SELECT p.name, COUNT(*) as cnt
		FROM operations o
		JOIN products p ON o.product_id = p.id
		GROUP BY p.name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&m.MostMovedProduct.Name, &m.MostMovedProduct.OperationCount)

	return m, nil
}
