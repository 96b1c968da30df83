package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field,omitempty"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Id) == "" {
		errs = append(errs, ProductValidationError{Field: "Id", Description: "Id is required"})
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.CostPrice < 0 {
		errs = append(errs, ProductValidationError{Field: "CostPrice", Description: "Cost price cannot be negative"})
	}
	if p.SellingPrice <= 0 {
		errs = append(errs, ProductValidationError{Field: "SellingPrice", Description: "Selling price must be greater than zero"})
	}
	return errs
}
