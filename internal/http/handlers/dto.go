package handlers

type ProductRequest struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Supplier     string  `json:"supplier"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Popularity   float64 `json:"popularity,omitempty"`
}

type ProductResponse struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Supplier     string  `json:"supplier"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Popularity   float64 `json:"popularity,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type StockAdjustmentRequest struct {
	LocationID string `json:"location_id"`
	Delta      int    `json:"delta"` // can be positive or negative
}

type StockAdjustmentResponse struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

type LocationQuantity struct {
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

type StockLevelsResponse struct {
	ProductID string             `json:"product_id"`
	Total     int                `json:"total"`
	Locations []LocationQuantity `json:"locations"`
}

type TransferRequest struct {
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
}

type TransferResponse struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int    `json:"quantity"`
	FromQuantity   int    `json:"from_quantity"`
	ToQuantity     int    `json:"to_quantity"`
}

type OperationResponse struct {
	ID        int    `json:"id"`
	Kind      string `json:"kind"`
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at"`
}

type OperationsSearchResult struct {
	Data []OperationResponse `json:"data"`
	Meta Meta                `json:"meta,omitempty"`
}

type LowStockProduct struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}

type LowStockReport struct {
	Threshold int               `json:"threshold"`
	Products  []LowStockProduct `json:"products"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
