package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	models "github.com/rogerio-castellano/stockroom/internal/models"
	repo "github.com/rogerio-castellano/stockroom/internal/repo"
)

type csvRow struct {
	ID           string
	Name         string
	Category     string
	Supplier     string
	CostPrice    float64
	SellingPrice float64
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(h)] = i
	}
	for _, required := range []string{"id", "name", "category", "supplier", "cost_price", "selling_price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			ID:           record[index["id"]],
			Name:         record[index["name"]],
			Category:     record[index["category"]],
			Supplier:     record[index["supplier"]],
			CostPrice:    parseFloat(record[index["cost_price"]]),
			SellingPrice: parseFloat(record[index["selling_price"]]),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("missing id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.CostPrice < 0 {
		return errors.New("invalid cost price")
	}
	if r.SellingPrice <= 0 {
		return errors.New("invalid selling price")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description The catalog is create-only; rows whose id already exists are reported as errors
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		newProduct := models.Product{
			ID:           rec.ID,
			Name:         rec.Name,
			Category:     rec.Category,
			Supplier:     rec.Supplier,
			CostPrice:    rec.CostPrice,
			SellingPrice: rec.SellingPrice,
		}
		if _, err := svc.AddProduct(newProduct); err != nil {
			if errors.Is(err, repo.ErrDuplicateProduct) {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.ID)})
			} else {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			}
			continue
		}
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
