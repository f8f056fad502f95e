package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
	"github.com/mshelar/shop-service/internal/utils"
)

// respondError maps service errors to HTTP statuses. Unknown errors
// become a 500 with a generic body so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrCouponExpired),
		errors.Is(err, service.ErrOrderExists):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, utils.ErrTokenExpired),
		errors.Is(err, utils.ErrTokenInvalid):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrNotInCart):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrRateLimited):
		status = http.StatusTooManyRequests
		message = err.Error()
	}

	c.JSON(status, dto.ErrorResponse{Message: message})
}
