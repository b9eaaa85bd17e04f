package handler

import (
	"errors"
	"net/http"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    service.AuthService
	accessTokenTTL time.Duration
}

func NewAuthHandler(authService service.AuthService, accessTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, accessTokenTTL: accessTokenTTL}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.RefreshToken)
	rg.POST("/revoke", h.RevokeToken)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Email, req.FirstName, req.LastName)
	if errors.Is(err, service.ErrNameInUse) || errors.Is(err, service.ErrEmailInUse) {
		c.JSON(http.StatusConflict, gin.H{"errors": "account creation failed"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":    user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		ExpiresIn:    int64(h.accessTokenTTL.Seconds()),
	})
}

// RefreshToken rotates both tokens: a fresh refresh token is always issued
// alongside the new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(h.accessTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) RevokeToken(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	// always succeed from the caller's point of view to avoid token fishing
	_ = h.authService.RevokeToken(req.RefreshToken)

	c.JSON(http.StatusOK, dto.RevokeTokenResponse{
		Message: "refresh token revoked",
	})
}
