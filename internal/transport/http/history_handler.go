package handlers

import (
	"log/slog"
	"net/http"

	"streamflix/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	log     *slog.Logger
	history *usecase.HistoryUseCase
}

func NewHistoryHandler(log *slog.Logger, h *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{log: log, history: h}
}

type recordHistoryReq struct {
	MovieID         string  `json:"movie_id"`
	MovieTitle      string  `json:"movie_title"`
	MoviePoster     string  `json:"movie_poster"`
	MovieType       string  `json:"movie_type"`
	ProgressPercent float64 `json:"progress_percent"`
}

// GET /api/history/:profileId
func (h *HistoryHandler) List(c *gin.Context) {
	profileID, ok := parseID(c, "profileId", "profile")
	if !ok {
		return
	}
	items, err := h.history.List(c.Request.Context(), profileID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]historyItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, historyItemResponse{
			ID:              it.ID,
			MovieID:         it.MovieID,
			MovieTitle:      it.MovieTitle,
			MoviePoster:     it.MoviePoster,
			MovieType:       it.MovieType,
			WatchedAt:       it.WatchedAt,
			ProgressPercent: it.ProgressPercent,
		})
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/history/:profileId
func (h *HistoryHandler) Record(c *gin.Context) {
	profileID, ok := parseID(c, "profileId", "profile")
	if !ok {
		return
	}
	var req recordHistoryReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	err := h.history.Record(c.Request.Context(), profileID, usecase.MovieInput{
		MovieID: req.MovieID,
		Title:   req.MovieTitle,
		Poster:  req.MoviePoster,
		Type:    req.MovieType,
	}, req.ProgressPercent)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to viewing history"})
}
