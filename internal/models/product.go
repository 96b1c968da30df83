package models

// Product represents an immutable catalog entry. Products are created once
// and never updated in place; stock levels live in the ledger, not here.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Supplier     string  `json:"supplier"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Popularity   float64 `json:"popularity"`
	CreatedAt    string  `json:"created_at,omitempty"`
}
