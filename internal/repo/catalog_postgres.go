package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	models "github.com/rogerio-castellano/stockroom/internal/models"
)

type PostgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (id, name, category, supplier, cost_price, selling_price, popularity, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Category, p.Supplier, p.CostPrice, p.SellingPrice, p.Popularity, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return models.Product{}, ErrDuplicateProduct
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresCatalogRepository) GetAll() ([]models.Product, error) {
	query := `SELECT id, name, category, supplier, cost_price, selling_price, popularity FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Supplier, &p.CostPrice, &p.SellingPrice, &p.Popularity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *PostgresCatalogRepository) GetByID(id string) (models.Product, error) {
	query := `SELECT id, name, category, supplier, cost_price, selling_price, popularity FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Supplier, &p.CostPrice, &p.SellingPrice, &p.Popularity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresCatalogRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	conditions, args := filterConditions(pf)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT id, name, category, supplier, cost_price, selling_price, popularity FROM products` +
		whereClause + ` ORDER BY id`
	argIdx := len(args) + 1
	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Supplier, &p.CostPrice, &p.SellingPrice, &p.Popularity); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, nil
}

func filterConditions(pf ProductFilter) ([]string, []any) {
	var conditions []string
	var args []any
	argIdx := 1

	if pf.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+pf.Name+"%")
		argIdx++
	}
	if pf.Category != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(category) = LOWER($%d)", argIdx))
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.Supplier != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(supplier) = LOWER($%d)", argIdx))
		args = append(args, pf.Supplier)
		argIdx++
	}
	if pf.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("selling_price >= $%d", argIdx))
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("selling_price <= $%d", argIdx))
		args = append(args, *pf.MaxPrice)
	}
	return conditions, args
}
