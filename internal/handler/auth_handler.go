package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/krys2fa/gbrapp-sub001/internal/config"
	"github.com/krys2fa/gbrapp-sub001/internal/middleware"
	"github.com/krys2fa/gbrapp-sub001/internal/service"
)

// AuthHandler serves login and account endpoints.
type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// Login verifies credentials, issues tokens and sets the auth cookie
// for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}

	c.SetCookie(middleware.AuthCookieName, pair.AccessToken,
		int(pair.ExpiresIn), "/", "", h.cfg.Server.Mode == "release", true)

	Success(c, gin.H{
		"user":  user,
		"token": pair,
	})
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}

	c.SetCookie(middleware.AuthCookieName, pair.AccessToken,
		int(pair.ExpiresIn), "/", "", h.cfg.Server.Mode == "release", true)

	Success(c, gin.H{"token": pair})
}

// Logout revokes the refresh token and clears the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		InternalError(c, err.Error())
		return
	}

	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)

	Success(c, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.svc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		NotFound(c, "User not found")
		return
	}

	Success(c, user)
}

// CreateUser registers a new account. Admin only.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	Created(c, user)
}

// ChangePassword rotates the caller's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), GetUserID(c), &req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, gin.H{"message": "password changed"})
}
