package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/rogerio-castellano/stockroom/internal/models"
)

type PostgresStockRepository struct {
	db *sql.DB
}

func NewPostgresStockRepository(db *sql.DB) *PostgresStockRepository {
	return &PostgresStockRepository{db: db}
}

// Adjust applies the delta inside a single UPDATE guarded by the quantity
// check, so a concurrent adjustment can never drive the cell negative.
func (r *PostgresStockRepository) Adjust(locationID, productID string, delta int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `INSERT INTO stock_entries (location_id, product_id, quantity)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (location_id, product_id)
	          DO UPDATE SET quantity = stock_entries.quantity + $3
	          WHERE stock_entries.quantity + $3 >= 0
	          RETURNING quantity`

	var newQty int
	err := r.db.QueryRowContext(ctx, query, locationID, productID, delta).Scan(&newQty)
	if errors.Is(err, sql.ErrNoRows) {
		// The WHERE clause rejected the update.
		return 0, ErrInsufficientStock
	}
	if err != nil {
		if delta < 0 {
			// Inserting a fresh row with a negative quantity violates the
			// non-negative CHECK constraint.
			return 0, ErrInsufficientStock
		}
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return newQty, nil
}

func (r *PostgresStockRepository) QuantityAt(locationID, productID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var qty int
	err := r.db.QueryRowContext(ctx,
		`SELECT quantity FROM stock_entries WHERE location_id = $1 AND product_id = $2`,
		locationID, productID).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return qty, err
}

func (r *PostgresStockRepository) TotalFor(productID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_entries WHERE product_id = $1`,
		productID).Scan(&total)
	return total, err
}

func (r *PostgresStockRepository) LevelsFor(productID string) ([]models.StockEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, location_id, quantity FROM stock_entries WHERE product_id = $1 ORDER BY location_id`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []models.StockEntry
	for rows.Next() {
		var e models.StockEntry
		if err := rows.Scan(&e.ProductID, &e.LocationID, &e.Quantity); err != nil {
			return nil, err
		}
		levels = append(levels, e)
	}
	return levels, nil
}
