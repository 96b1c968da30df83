package repo

import (
	"time"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

type InMemoryOperationRepository struct {
	operations []models.Operation
}

func NewInMemoryOperationRepository() *InMemoryOperationRepository {
	return &InMemoryOperationRepository{
		operations: []models.Operation{},
	}
}

// Log appends a new operation record. Records are never mutated afterwards.
func (r *InMemoryOperationRepository) Log(op models.Operation) error {
	op.ID = len(r.operations) + 1
	if op.CreatedAt == "" {
		op.CreatedAt = time.Now().Format(time.RFC3339)
	}
	r.operations = append(r.operations, op)
	return nil
}

// GetByProductID returns operations for a product in insertion order,
// optionally filtered by kind and date range, and paginated.
func (r *InMemoryOperationRepository) GetByProductID(productID string, of OperationFilter) ([]models.Operation, int, error) {
	var filtered []models.Operation
	for _, op := range r.operations {
		if op.ProductID != productID {
			continue
		}
		if of.Kind != "" && op.Kind != of.Kind {
			continue
		}
		if (of.Since != nil && op.CreatedAt < of.Since.Format(time.RFC3339)) ||
			(of.Until != nil && op.CreatedAt > of.Until.Format(time.RFC3339)) {
			continue
		}
		filtered = append(filtered, op)
	}

	if of.Offset != nil && *of.Offset > len(filtered) {
		return nil, 0, nil
	}

	start := 0
	if of.Offset != nil {
		start = clamp(*of.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if of.Limit != nil && *of.Limit > 0 {
		end = clamp(start+*of.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryOperationRepository) CountFor(productID string) (int, error) {
	count := 0
	for _, op := range r.operations {
		if op.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryOperationRepository) Clear() {
	r.operations = []models.Operation{}
}
