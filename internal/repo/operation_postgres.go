package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

type PostgresOperationRepository struct {
	db *sql.DB
}

func NewPostgresOperationRepository(db *sql.DB) *PostgresOperationRepository {
	return &PostgresOperationRepository{db: db}
}

// Log inserts a new operation record. The table carries no UPDATE or DELETE
// paths; history is append-only.
func (r *PostgresOperationRepository) Log(op models.Operation) error {
	query := `INSERT INTO operations (kind, product_id, delta, note, created_at) VALUES ($1, $2, $3, $4, $5)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	createdAt := op.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format(time.RFC3339)
	}

	if _, err := r.db.ExecContext(ctx, query, op.Kind, op.ProductID, op.Delta, op.Note, createdAt); err != nil {
		return fmt.Errorf("failed to insert operation: %w", err)
	}
	return nil
}

// GetByProductID returns operations for a product in insertion order.
func (r *PostgresOperationRepository) GetByProductID(productID string, of OperationFilter) ([]models.Operation, int, error) {
	whereClause, args := r.buildWhereClause(productID, of)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if of.Offset != nil && *of.Offset >= total {
		return []models.Operation{}, total, nil
	}

	query := `SELECT id, kind, product_id, delta, note, created_at FROM operations` + whereClause + ` ORDER BY id`
	argIdx := len(args) + 1
	if of.Limit != nil && *of.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *of.Limit)
		argIdx++
	}
	if of.Offset != nil && *of.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *of.Offset)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var operations []models.Operation
	for rows.Next() {
		var op models.Operation
		if err := rows.Scan(&op.ID, &op.Kind, &op.ProductID, &op.Delta, &op.Note, &op.CreatedAt); err != nil {
			return nil, 0, err
		}
		operations = append(operations, op)
	}
	return operations, total, nil
}

func (r *PostgresOperationRepository) CountFor(productID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations WHERE product_id = $1`, productID).Scan(&count)
	return count, err
}

func (r *PostgresOperationRepository) buildWhereClause(productID string, of OperationFilter) (string, []any) {
	conditions := []string{"product_id = $1"}
	args := []any{productID}
	argIdx := 2

	if of.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, of.Kind)
		argIdx++
	}
	if of.Since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, of.Since.Format(time.RFC3339))
		argIdx++
	}
	if of.Until != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, of.Until.Format(time.RFC3339))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresOperationRepository) getTotal(whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations`+whereClause, args...).Scan(&total)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return total, nil
}
