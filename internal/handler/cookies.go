package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
)

// Session cookie names
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieWriter sets and clears the session cookies. Both cookies are
// HTTP-only and SameSite=Strict; Secure is on outside development.
type CookieWriter struct {
	secure        bool
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewCookieWriter creates a cookie writer. secure should be true in
// production deployments.
func NewCookieWriter(secure bool, accessExpiry, refreshExpiry time.Duration) *CookieWriter {
	return &CookieWriter{
		secure:        secure,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// SetSession sets both token cookies
func (w *CookieWriter) SetSession(c *gin.Context, pair *domain.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessTokenCookie, pair.AccessToken, int(w.accessExpiry.Seconds()), "/", "", w.secure, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, int(w.refreshExpiry.Seconds()), "/", "", w.secure, true)
}

// SetAccessToken replaces only the access token cookie
func (w *CookieWriter) SetAccessToken(c *gin.Context, accessToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessTokenCookie, accessToken, int(w.accessExpiry.Seconds()), "/", "", w.secure, true)
}

// ClearSession expires both token cookies
func (w *CookieWriter) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", w.secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", w.secure, true)
}
