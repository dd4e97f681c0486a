package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
)

// Handler handles HTTP requests for the session checkout.
// Blocked transitions are not errors: they answer 200 with moved=false.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetCheckout handles GET /checkout
func (h *Handler) GetCheckout(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	response.Success(c, http.StatusOK, "Checkout retrieved successfully", sess.Checkout.Snapshot())
}

// Next handles POST /checkout/next
func (h *Handler) Next(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	moved := sess.Checkout.Next()

	response.Success(c, http.StatusOK, "Checkout transition evaluated", model.TransitionResponse{
		Moved:    moved,
		Checkout: sess.Checkout.Snapshot(),
	})
}

// Back handles POST /checkout/back
func (h *Handler) Back(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	moved := sess.Checkout.Back()

	response.Success(c, http.StatusOK, "Checkout transition evaluated", model.TransitionResponse{
		Moved:    moved,
		Checkout: sess.Checkout.Snapshot(),
	})
}

// SetEmail handles PUT /checkout/email
func (h *Handler) SetEmail(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	var req model.SetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Invalid request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Validation failed", err.Error())
		return
	}

	sess.Checkout.SetEmail(req.Email)

	response.Success(c, http.StatusOK, "Contact email updated", sess.Checkout.Snapshot())
}

// SetAddress handles PUT /checkout/address
func (h *Handler) SetAddress(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	var req model.SetAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Invalid request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Validation failed", err)
		return
	}

	sess.Checkout.SetAddress(req.ToAddress())

	response.Success(c, http.StatusOK, "Shipping address updated", sess.Checkout.Snapshot())
}

// SetPaymentMethod handles PUT /checkout/payment-method
func (h *Handler) SetPaymentMethod(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	var req model.SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Invalid request", err.Error())
		return
	}

	if err := sess.Checkout.SetPaymentMethod(req.PaymentMethod); err != nil {
		if errors.Is(err, model.ErrInvalidPaymentMethod) {
			response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidPaymentMethod, err.Error(), nil)
			return
		}
		response.InternalServerError(c, "Failed to set payment method")
		return
	}

	response.Success(c, http.StatusOK, "Payment method updated", sess.Checkout.Snapshot())
}

// Finalize handles POST /checkout/finalize
// The settlement continues after the request returns; its outcome is visible
// through GET /checkout and the session event stream.
func (h *Handler) Finalize(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	st := sess.Checkout.Finalize(c.Request.Context())
	if st == nil {
		response.Success(c, http.StatusOK, "Finalize ignored", model.FinalizeResponse{
			Started:  false,
			Checkout: sess.Checkout.Snapshot(),
		})
		return
	}

	response.Success(c, http.StatusAccepted, "Settlement started", model.FinalizeResponse{
		Started:   true,
		Reference: st.Reference,
		Checkout:  sess.Checkout.Snapshot(),
	})
}

// Close handles POST /checkout/close
func (h *Handler) Close(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	sess.Checkout.Close()

	response.Success(c, http.StatusOK, "Panel closed", sess.Snapshot())
}
