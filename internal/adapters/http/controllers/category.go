package controllers

import (
	"net/http"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/adapters/http/handlers"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/dto"
	"github.com/alessok/devops-proyecto-final/internal/core/service"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          int64(category.ID),
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func categoryID(c *gin.Context) (domain.ID, bool) {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("invalid category ID"))
		return 0, false
	}
	return id, true
}

// Create godoc
// @Summary     Create a category
// @Description Creates a new product category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body     dto.CreateCategoryRequest true "Category data"
// @Success     201     {object} CategoryResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Router      /api/v1/categories [post]
func (cc *CategoryController) Create(c *gin.Context) {
	var request dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	category, err := cc.categoryService.Create(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCategoryResponse(category))
}

// List godoc
// @Summary     List categories
// @Description Returns all categories ordered by id
// @Tags        categories
// @Produce     json
// @Success     200 {array}  CategoryResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/categories [get]
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.categoryService.List(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = NewCategoryResponse(category)
	}
	c.JSON(http.StatusOK, responses)
}

// GetByID godoc
// @Summary     Get a category
// @Description Returns a single category by id
// @Tags        categories
// @Produce     json
// @Param       id  path     int true "Category ID"
// @Success     200 {object} CategoryResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/categories/{id} [get]
func (cc *CategoryController) GetByID(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	category, err := cc.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCategoryResponse(category))
}

// Delete godoc
// @Summary     Delete a category
// @Description Removes a category permanently
// @Tags        categories
// @Produce     json
// @Param       id  path int true "Category ID"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/v1/categories/{id} [delete]
func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	if err := cc.categoryService.Delete(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
