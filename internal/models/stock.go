package models

// StockEntry is a single (product, location) ledger cell. Quantity is never
// negative; an absent entry reads as zero stock.
type StockEntry struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}
