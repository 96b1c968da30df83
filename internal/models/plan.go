package models

// Recommendation suggests a restock amount for a product at one location.
// Derived on demand, never persisted.
type Recommendation struct {
	ProductID           string `json:"product_id"`
	Name                string `json:"name"`
	CurrentQuantity     int    `json:"current_quantity"`
	RecommendedQuantity int    `json:"recommended_quantity"`
	Supplier            string `json:"supplier"`
}

// PurchasePlan schedules a fixed-size purchase batch for a product whose
// projected restock date falls inside the planning window.
type PurchasePlan struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	BatchSize   int    `json:"batch_size"`
	RestockDate string `json:"restock_date"`
}
