package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// CartHandler handles cart requests for the authenticated user
type CartHandler struct {
	carts service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the cart joined against the current catalog
// @Summary Get the user's cart
// @Tags cart
// @Produce json
// @Success 200 {array} dto.CartProduct
// @Router /api/cart [get]
func (h *CartHandler) Get(c *gin.Context, user *domain.User) {
	products, err := h.carts.CartView(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Add puts one unit of a product into the cart
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body dto.AddToCartRequest true "Product to add"
// @Success 200 {array} domain.CartItem
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/cart [post]
func (h *CartHandler) Add(c *gin.Context, user *domain.User) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	if err := h.carts.AddItem(c.Request.Context(), user, req.ProductID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.CartItems)
}

// Remove deletes one product line, or the whole cart when no id is sent.
// The product id comes from the path when present, otherwise the body.
// @Summary Remove a product from the cart
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {array} domain.CartItem
// @Router /api/cart [delete]
func (h *CartHandler) Remove(c *gin.Context, user *domain.User) {
	productID := c.Param("id")
	if productID == "" && c.Request.ContentLength > 0 {
		var req dto.RemoveFromCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		productID = req.ProductID
	}

	if err := h.carts.RemoveItem(c.Request.Context(), user, productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.CartItems)
}

// UpdateQuantity overwrites a line's quantity; zero removes the line
// @Summary Update a cart line's quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.UpdateQuantityRequest true "New quantity"
// @Success 200 {array} domain.CartItem
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/cart/{id} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context, user *domain.User) {
	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	if err := h.carts.SetQuantity(c.Request.Context(), user, c.Param("id"), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.CartItems)
}
