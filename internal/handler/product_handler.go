package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the full catalog for the admin dashboard
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/product [get]
func (h *ProductHandler) List(c *gin.Context, _ *domain.User) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Featured returns the cached featured product list
// @Summary List featured products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/product/featured [get]
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.products.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Recommended returns a small random product sample
// @Summary List recommended products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/product/recommended [get]
func (h *ProductHandler) Recommended(c *gin.Context) {
	products, err := h.products.Recommended(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ByCategory returns products in a single category
// @Summary List products by category
// @Tags products
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {array} domain.Product
// @Router /api/product/category/{category} [get]
func (h *ProductHandler) ByCategory(c *gin.Context) {
	products, err := h.products.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create adds a product to the catalog, uploading its image if one is sent
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/product [post]
func (h *ProductHandler) Create(c *gin.Context, _ *domain.User) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ToggleFeatured flips a product's featured flag
// @Summary Toggle a product's featured flag
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/product/{id} [patch]
func (h *ProductHandler) ToggleFeatured(c *gin.Context, _ *domain.User) {
	product, err := h.products.ToggleFeatured(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes a product and its stored image
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/product/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context, _ *domain.User) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}
