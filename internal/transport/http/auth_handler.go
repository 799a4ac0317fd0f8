package handlers

import (
	"log/slog"
	"net/http"

	"streamflix/internal/application/usecase"
	"streamflix/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	log  *slog.Logger
	auth *usecase.AuthUseCase
}

func NewAuthHandler(log *slog.Logger, auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{log: log, auth: auth}
}

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration successful",
		"access_token": res.AccessToken,
		"user":         toUserResponse(res.User),
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": res.AccessToken,
		"user":         toUserResponse(res.User),
	})
}

// GET /api/auth/me (за AuthMiddleware)
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := middleware.BearerToken(c); ok {
		h.auth.Logout(c.Request.Context(), token)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
