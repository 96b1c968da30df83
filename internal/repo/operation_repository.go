package repo

import (
	"github.com/rogerio-castellano/stockroom/internal/models"
)

// OperationRepository is the append-only history of inventory mutations.
type OperationRepository interface {
	Log(op models.Operation) error
	GetByProductID(productID string, of OperationFilter) ([]models.Operation, int, error)
	CountFor(productID string) (int, error)
}
