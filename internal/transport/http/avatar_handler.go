package handlers

import (
	"log/slog"
	"net/http"

	"streamflix/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type AvatarHandler struct {
	log     *slog.Logger
	avatars *usecase.AvatarUseCase
}

func NewAvatarHandler(log *slog.Logger, a *usecase.AvatarUseCase) *AvatarHandler {
	return &AvatarHandler{log: log, avatars: a}
}

// GET /api/avatars?category=
func (h *AvatarHandler) List(c *gin.Context) {
	avatars, err := h.avatars.ListPredefined(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]avatarResponse, 0, len(avatars))
	for _, a := range avatars {
		out = append(out, avatarResponse{ID: a.ID, Name: a.Name, ImageURL: a.ImageURL, Category: a.Category})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "avatars": out})
}
