package models

// OperationKind identifies what a history record describes.
type OperationKind string

const (
	OpAddItem     OperationKind = "ADD_ITEM"
	OpUpdateStock OperationKind = "UPDATE_STOCK"
	OpTransfer    OperationKind = "TRANSFER"
)

// Operation is one append-only audit record of an inventory mutation.
// Records are never updated or deleted after insertion.
type Operation struct {
	ID        int           `json:"id"`
	Kind      OperationKind `json:"kind"`
	ProductID string        `json:"product_id"`
	Delta     int           `json:"delta"`
	Note      string        `json:"note,omitempty"`
	CreatedAt string        `json:"created_at"`
}
