package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// AnalyticsHandler serves the admin sales dashboard
type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Get returns store totals plus daily sales for the trailing week
// @Summary Get sales analytics
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/analytics [get]
func (h *AnalyticsHandler) Get(c *gin.Context, _ *domain.User) {
	ctx := c.Request.Context()

	overview, err := h.analytics.Overview(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -7)
	daily, err := h.analytics.DailySales(ctx, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnalyticsResponse{
		Analytics:      *overview,
		DailySalesData: daily,
	})
}
