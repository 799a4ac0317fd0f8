package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"streamflix/internal/application/usecase"
	"streamflix/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ProfileHandler struct {
	log      *slog.Logger
	profiles *usecase.ProfileUseCase
}

func NewProfileHandler(log *slog.Logger, p *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{log: log, profiles: p}
}

type createProfileReq struct {
	UserID    uint   `json:"user_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	AvatarURL string `json:"avatar_url"`
	IsKids    bool   `json:"is_kids"`
}

// Неизвестные ключи игнорируются, менять можно только эти поля
type updateProfileReq struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	IsKids    *bool   `json:"is_kids"`
}

// GET /api/profiles?user_id=
func (h *ProfileHandler) List(c *gin.Context) {
	var userID uint
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		userID = uint(id)
	}
	h.list(c, userID)
}

// GET /api/profiles/user/:userId
func (h *ProfileHandler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId", "user")
	if !ok {
		return
	}
	h.list(c, userID)
}

func (h *ProfileHandler) list(c *gin.Context, userID uint) {
	profiles, err := h.profiles.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfileList(profiles))
}

// GET /api/profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "profile")
	if !ok {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProfileDetail(profile))
}

// POST /api/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req createProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + fieldErrs[0].Field()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), usecase.CreateProfileInput{
		UserID:    req.UserID,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		IsKids:    req.IsKids,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         profile.ID,
		"name":       profile.Name,
		"avatar_url": profile.AvatarURL,
		"is_kids":    profile.IsKids,
		"user_id":    profile.UserID,
		"created_at": profile.CreatedAt,
		"updated_at": profile.UpdatedAt,
		"message":    "Profile created successfully",
	})
}

// PUT /api/profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "profile")
	if !ok {
		return
	}
	var req updateProfileReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), id, domain.ProfilePatch{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		IsKids:    req.IsKids,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": toProfileShort(profile),
	})
}

// DELETE /api/profiles/:id
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "profile")
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// PUT /api/profiles/:id/avatar
func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	id, ok := parseID(c, "id", "profile")
	if !ok {
		return
	}
	var req struct {
		AvatarData string `json:"avatar_data"`
	}
	if !bindOptionalJSON(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateAvatar(c.Request.Context(), id, req.AvatarData)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Avatar updated successfully",
		"profile": toProfileShort(profile),
	})
}
