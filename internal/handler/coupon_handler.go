package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// CouponHandler handles discount coupon requests
type CouponHandler struct {
	coupons service.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// Get returns the user's active coupon, if any
// @Summary Get the user's active coupon
// @Tags coupons
// @Produce json
// @Success 200 {object} domain.Coupon
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/coupons [get]
func (h *CouponHandler) Get(c *gin.Context, user *domain.User) {
	coupon, err := h.coupons.ActiveCoupon(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// Validate checks a coupon code against the user's active coupon
// @Summary Validate a coupon code
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body dto.ValidateCouponRequest true "Coupon code"
// @Success 200 {object} dto.ValidCouponResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context, user *domain.User) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	coupon, err := h.coupons.ValidateCoupon(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidCouponResponse{
		Message:            "Coupon is valid",
		Code:               coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
	})
}
