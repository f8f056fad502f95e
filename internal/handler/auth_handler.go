package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/service"
)

// AuthHandler handles session lifecycle requests
type AuthHandler struct {
	sessions service.SessionService
	cookies  *CookieWriter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions service.SessionService, cookies *CookieWriter) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cookies:  cookies,
	}
}

// Signup handles user registration
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup request"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	user, pair, err := h.sessions.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.SetSession(c, pair)
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles user login
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	user, pair, err := h.sessions.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.SetSession(c, pair)
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Logout revokes the current session and clears both cookies
// @Summary Log out the current session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No refresh token provided"})
		return
	}

	if err := h.sessions.RevokeSession(c.Request.Context(), refreshToken); err != nil {
		respondError(c, err)
		return
	}

	h.cookies.ClearSession(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// RefreshAccessToken mints a new access token from the refresh cookie
// @Summary Refresh the access token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/access-token [get]
func (h *AuthHandler) RefreshAccessToken(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No refresh token provided"})
		return
	}

	accessToken, err := h.sessions.RotateAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.SetAccessToken(c, accessToken)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Token refreshed successfully"})
}

// Profile returns the authenticated user's profile
// @Summary Get the current user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context, user *domain.User) {
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
