package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// Handler handles HTTP requests for the catalog
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListProducts handles GET /products?category=&promo=&sort=
func (h *Handler) ListProducts(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidFilter, "Invalid filter", err.Error())
		return
	}

	products, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSort) {
			response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidFilter, err.Error(), nil)
			return
		}
		logger.Error("Failed to list products", err)
		response.InternalServerError(c, "Failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Products retrieved successfully", products, &response.Meta{
		Total: len(products),
	})
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, model.ErrCodeProductNotFound, err.Error(), nil)
			return
		}
		logger.Error("Failed to get product", err)
		response.InternalServerError(c, "Failed to get product")
		return
	}

	response.Success(c, http.StatusOK, "Product retrieved successfully", product)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list categories", err)
		response.InternalServerError(c, "Failed to list categories")
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", categories)
}
