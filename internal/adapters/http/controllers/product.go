package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/adapters/http/handlers"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/dto"
	"github.com/alessok/devops-proyecto-final/internal/core/service"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type ProductResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	CategoryID    int64     `json:"categoryId"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            int64(product.ID),
		Name:          product.Name,
		Description:   product.Description,
		Price:         int64(product.Price),
		StockQuantity: product.StockQuantity,
		CategoryID:    int64(product.CategoryID),
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int64             `json:"page"`
	Limit int64             `json:"limit"`
}

type InventoryStatsResponse struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalValue    int64 `json:"totalValue"`
	LowStockCount int64 `json:"lowStockCount"`
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = NewProductResponse(product)
	}
	return responses
}

func productID(c *gin.Context) (domain.ID, bool) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("invalid product ID"))
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary     List products
// @Description Returns one page of products ordered by id
// @Tags        products
// @Produce     json
// @Param       page  query    int false "Page number"
// @Param       limit query    int false "Page size"
// @Success     200   {object} ProductListResponse
// @Failure     500   {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) List(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)

	result, err := pc.productService.List(c.Request.Context(), page, limit)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductListResponse{
		Data:  toProductResponses(result.Products),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// GetByID godoc
// @Summary     Get a product
// @Description Returns a single product by id
// @Tags        products
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [get]
func (pc *ProductController) GetByID(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Create godoc
// @Summary     Create a product
// @Description Creates a new product; replays with the same Idempotency-Key return the first result
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                   false "Idempotency key"
// @Param       request         body     dto.CreateProductRequest true  "Product data"
// @Success     201             {object} ProductResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) Create(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	product, err := pc.productService.Create(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// Update godoc
// @Summary     Update a product
// @Description Applies a partial update; absent fields are left unchanged
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     int                      true "Product ID"
// @Param       request body     dto.UpdateProductRequest true "Fields to update"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     422     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [put]
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var request dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	product, err := pc.productService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Delete godoc
// @Summary     Delete a product
// @Description Removes a product permanently
// @Tags        products
// @Produce     json
// @Param       id  path int true "Product ID"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id} [delete]
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := pc.productService.Delete(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStock godoc
// @Summary     Update product stock
// @Description Adjusts stock by a delta or sets an absolute quantity; stock can never go negative
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id      path     int                    true "Product ID"
// @Param       request body     dto.UpdateStockRequest true "Stock change"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     422     {object} handlers.ErrorResponse
// @Router      /api/v1/products/{id}/stock [patch]
func (pc *ProductController) UpdateStock(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var request dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	product, err := pc.productService.UpdateStock(c.Request.Context(), id, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductResponse(product))
}

// InventoryStats godoc
// @Summary     Inventory statistics
// @Description Returns aggregate counts and total inventory value over active products
// @Tags        inventory
// @Produce     json
// @Success     200 {object} InventoryStatsResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/inventory/stats [get]
func (pc *ProductController) InventoryStats(c *gin.Context) {
	stats, err := pc.productService.InventoryStats(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, InventoryStatsResponse{
		TotalProducts: stats.TotalProducts,
		TotalValue:    int64(stats.TotalValue),
		LowStockCount: stats.LowStockCount,
	})
}

// LowStock godoc
// @Summary     List low stock products
// @Description Returns products with stock at or below the threshold, lowest stock first
// @Tags        inventory
// @Produce     json
// @Param       threshold query    int false "Inclusive stock threshold"
// @Success     200       {array}  ProductResponse
// @Failure     400       {object} handlers.ErrorResponse
// @Router      /api/v1/products/low-stock [get]
func (pc *ProductController) LowStock(c *gin.Context) {
	var threshold *int
	if raw := c.Query("threshold"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			handlers.HandleError(c, serviceerrors.NewInvalidRequestError("invalid threshold"))
			return
		}
		threshold = &value
	}

	products, err := pc.productService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}
