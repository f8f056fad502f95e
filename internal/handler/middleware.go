package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// UserHandlerFunc is a gin handler that receives the authenticated user
// explicitly instead of digging it out of the request context.
type UserHandlerFunc func(c *gin.Context, user *domain.User)

// Authenticator resolves the access token cookie into a full user record
// and hands it to protected handlers.
type Authenticator struct {
	sessions service.SessionService
}

// NewAuthenticator creates an authenticator backed by the session service
func NewAuthenticator(sessions service.SessionService) *Authenticator {
	return &Authenticator{sessions: sessions}
}

// RequireUser rejects requests without a valid access token cookie
func (a *Authenticator) RequireUser(fn UserHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.authenticate(c)
		if !ok {
			return
		}
		fn(c, user)
	}
}

// RequireAdmin rejects non-admin users with 403
func (a *Authenticator) RequireAdmin(fn UserHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.authenticate(c)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Access denied - Admin only"})
			return
		}
		fn(c, user)
	}
}

func (a *Authenticator) authenticate(c *gin.Context) (*domain.User, bool) {
	token, err := c.Cookie(AccessTokenCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized - No access token provided"})
		return nil, false
	}

	user, err := a.sessions.LoadProfile(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}
