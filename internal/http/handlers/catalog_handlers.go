package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/stockroom/internal/models"
	repo "github.com/rogerio-castellano/stockroom/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds an immutable product definition to the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} []ProductValidationError
// @Failure 409 {string} string "Duplicate id"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		ID:           req.Id,
		Name:         req.Name,
		Category:     req.Category,
		Supplier:     req.Supplier,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Popularity:   req.Popularity,
	}
	created, err := svc.AddProduct(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateProduct) {
			http.Error(w, "could not create product: id already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags catalog
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := svc.Products()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := svc.Product(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(product))
}

// SearchProductsHandler godoc
// @Summary Search products
// @Tags catalog
// @Produce json
// @Param name query string false "Name substring"
// @Param category query string false "Category"
// @Param supplier query string false "Supplier"
// @Param min_price query number false "Minimum selling price"
// @Param max_price query number false "Maximum selling price"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	pf := repo.ProductFilter{
		Name:     r.URL.Query().Get("name"),
		Category: r.URL.Query().Get("category"),
		Supplier: r.URL.Query().Get("supplier"),
	}

	if s := r.URL.Query().Get("min_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "invalid min_price format", http.StatusBadRequest)
			return
		}
		pf.MinPrice = &v
	}
	if s := r.URL.Query().Get("max_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "invalid max_price format", http.StatusBadRequest)
			return
		}
		pf.MaxPrice = &v
	}

	var err error
	pf.Offset, pf.Limit, err = paginationParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, total, err := catalogRepo.Filter(pf)
	if err != nil {
		http.Error(w, "could not search products", http.StatusInternalServerError)
		return
	}

	result := ProductsSearchResult{
		Data: make([]ProductResponse, len(products)),
		Meta: Meta{TotalCount: total},
	}
	for i, p := range products {
		result.Data[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Supplier:     p.Supplier,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Popularity:   p.Popularity,
	}
}

func paginationParams(r *http.Request) (offset, limit *int, err error) {
	if s := r.URL.Query().Get("offset"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return nil, nil, errors.New("invalid offset format")
		}
		if v < 0 {
			return nil, nil, errors.New("offset must be zero or positive")
		}
		offset = &v
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return nil, nil, errors.New("invalid limit format")
		}
		if v <= 0 {
			return nil, nil, errors.New("limit must be greater than zero")
		}
		limit = &v
	}
	return offset, limit, nil
}
