package repo

import (
	"time"

	"github.com/rogerio-castellano/stockroom/internal/models"
)

type OperationFilter struct {
	Kind   models.OperationKind
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
