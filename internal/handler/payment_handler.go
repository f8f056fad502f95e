package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// PaymentHandler handles the checkout flow
type PaymentHandler struct {
	checkout service.CheckoutService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(checkout service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

// CreateCheckoutSession starts a hosted checkout for the posted products
// @Summary Create a checkout session
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CreateCheckoutRequest true "Checkout request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/payments/create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context, user *domain.User) {
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := h.checkout.CreateCheckoutSession(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckoutSuccess finalizes a checkout session into an order
// @Summary Confirm a completed checkout
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CheckoutSuccessRequest true "Session to confirm"
// @Success 200 {object} dto.CheckoutSuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/payments/checkout-success [post]
func (h *PaymentHandler) CheckoutSuccess(c *gin.Context, _ *domain.User) {
	var req dto.CheckoutSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := h.checkout.ConfirmCheckout(c.Request.Context(), req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
