package dto

type CreateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	StockQuantity *int    `json:"stockQuantity"`
	CategoryID    *int64  `json:"categoryId"`
}

// UpdateProductRequest is a partial update: every field is optional and only
// the fields present in the payload are applied. Unknown fields are ignored.
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	StockQuantity *int    `json:"stockQuantity"`
	CategoryID    *int64  `json:"categoryId"`
	IsActive      *bool   `json:"isActive"`
}

// UpdateStockRequest adjusts stock either by a signed delta or to an absolute
// quantity. Exactly one of the two fields must be present.
type UpdateStockRequest struct {
	Delta    *int `json:"delta"`
	Quantity *int `json:"quantity"`
}
