package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/dto"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
)

const (
	nameMinLen        = 2
	nameMaxLen        = 100
	descriptionMaxLen = 500
)

type violations []serviceerrors.FieldViolation

func (v *violations) add(field, message string) {
	*v = append(*v, serviceerrors.FieldViolation{Field: field, Message: message})
}

// ValidateCreateProduct checks a create payload and enumerates every
// violation. A missing field yields a single "required" violation for that
// field, never a duplicate range error on top of it.
func ValidateCreateProduct(req *dto.CreateProductRequest) []serviceerrors.FieldViolation {
	var v violations

	if req.Name == nil {
		v.add("name", "name is required")
	} else {
		checkName(&v, *req.Name)
	}

	if req.Description == nil {
		v.add("description", "description is required")
	} else {
		checkDescription(&v, *req.Description)
	}

	if req.Price == nil {
		v.add("price", "price is required")
	} else if *req.Price <= 0 {
		v.add("price", "price must be greater than 0")
	}

	if req.StockQuantity == nil {
		v.add("stockQuantity", "stockQuantity is required")
	} else if *req.StockQuantity < 0 {
		v.add("stockQuantity", "stockQuantity must not be negative")
	}

	if req.CategoryID == nil {
		v.add("categoryId", "categoryId is required")
	} else if *req.CategoryID <= 0 {
		v.add("categoryId", "categoryId must be a positive integer")
	}

	return v
}

// ValidateUpdateProduct checks only the fields present in a partial update.
func ValidateUpdateProduct(req *dto.UpdateProductRequest) []serviceerrors.FieldViolation {
	var v violations

	if req.Name != nil {
		checkName(&v, *req.Name)
	}
	if req.Description != nil {
		checkDescription(&v, *req.Description)
	}
	if req.Price != nil && *req.Price <= 0 {
		v.add("price", "price must be greater than 0")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		v.add("stockQuantity", "stockQuantity must not be negative")
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		v.add("categoryId", "categoryId must be a positive integer")
	}

	return v
}

// ValidateUpdateStock requires exactly one of delta or quantity; an absolute
// quantity must not be negative.
func ValidateUpdateStock(req *dto.UpdateStockRequest) []serviceerrors.FieldViolation {
	var v violations

	switch {
	case req.Delta == nil && req.Quantity == nil:
		v.add("quantity", "either delta or quantity is required")
	case req.Delta != nil && req.Quantity != nil:
		v.add("quantity", "delta and quantity are mutually exclusive")
	case req.Quantity != nil && *req.Quantity < 0:
		v.add("quantity", "quantity must not be negative")
	}

	return v
}

func ValidateCreateCategory(req *dto.CreateCategoryRequest) []serviceerrors.FieldViolation {
	var v violations

	if req.Name == nil {
		v.add("name", "name is required")
	} else {
		checkName(&v, *req.Name)
	}
	if req.Description != nil {
		checkDescription(&v, *req.Description)
	}

	return v
}

// CheckProductInvariants re-validates a merged product before commit. It
// backstops the payload validators: a record violating these must never be
// written.
func CheckProductInvariants(p *domain.Product) error {
	if p.Price <= 0 {
		return serviceerrors.NewInvalidOperationError(fmt.Sprintf("product %d would have non-positive price", p.ID))
	}
	if p.StockQuantity < 0 {
		return serviceerrors.NewInvalidOperationError(fmt.Sprintf("product %d would have negative stock", p.ID))
	}
	return nil
}

func checkName(v *violations, name string) {
	n := utf8.RuneCountInString(name)
	if n < nameMinLen || n > nameMaxLen {
		v.add("name", fmt.Sprintf("name length must be between %d and %d characters", nameMinLen, nameMaxLen))
	}
}

func checkDescription(v *violations, description string) {
	if utf8.RuneCountInString(description) > descriptionMaxLen {
		v.add("description", fmt.Sprintf("description must not exceed %d characters", descriptionMaxLen))
	}
}
