package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storefront-backend/internal/domains/cart/model"
	catalogModel "storefront-backend/internal/domains/catalog/model"
	catalogService "storefront-backend/internal/domains/catalog/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// Handler handles HTTP requests for the session cart
type Handler struct {
	catalog catalogService.ServiceInterface
}

func NewHandler(catalog catalogService.ServiceInterface) *Handler {
	return &Handler{catalog: catalog}
}

// GetCart handles GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	response.Success(c, http.StatusOK, "Cart retrieved successfully", sess.Cart.Snapshot().ToResponse())
}

// AddItem handles POST /cart/items
// Re-adding a product in the same color increases its quantity.
func (h *Handler) AddItem(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	var req model.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Invalid request", err.Error())
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		code := model.ErrCodeInvalidRequest
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			if _, bad := verrs["quantity"]; bad {
				code = model.ErrCodeInvalidQuantity
			}
		}
		response.Error(c, http.StatusBadRequest, code, "Validation failed", err)
		return
	}

	product, err := h.catalog.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalogModel.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, model.ErrCodeProductNotFound, err.Error(), nil)
			return
		}
		logger.Error("Failed to resolve product", err)
		response.InternalServerError(c, "Failed to add item")
		return
	}

	if err := sess.Cart.AddItem(*product, req.Quantity, req.Color); err != nil {
		if errors.Is(err, model.ErrInvalidQuantity) {
			response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidQuantity, err.Error(), nil)
			return
		}
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusCreated, "Item added to cart", sess.Cart.Snapshot().ToResponse())
}

// RemoveItem handles DELETE /cart/items/:product_id
// Every color of the product is removed; unknown ids are a no-op.
func (h *Handler) RemoveItem(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	removed := sess.Cart.RemoveItem(c.Param("product_id"))

	response.Success(c, http.StatusOK, "Item removed from cart", gin.H{
		"removed_lines": removed,
		"cart":          sess.Cart.Snapshot().ToResponse(),
	})
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	removed := sess.Cart.Clear()

	response.Success(c, http.StatusOK, "Cart cleared", gin.H{
		"removed_lines": removed,
		"cart":          sess.Cart.Snapshot().ToResponse(),
	})
}

// TogglePanel handles POST /cart/toggle
func (h *Handler) TogglePanel(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	open := sess.Cart.ToggleOpen()

	response.Success(c, http.StatusOK, "Cart panel toggled", gin.H{"panel_open": open})
}
