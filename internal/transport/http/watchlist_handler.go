package handlers

import (
	"log/slog"
	"net/http"

	"streamflix/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	log       *slog.Logger
	watchlist *usecase.WatchlistUseCase
}

func NewWatchlistHandler(log *slog.Logger, w *usecase.WatchlistUseCase) *WatchlistHandler {
	return &WatchlistHandler{log: log, watchlist: w}
}

type movieReq struct {
	MovieTitle  string `json:"movie_title"`
	MoviePoster string `json:"movie_poster"`
	MovieType   string `json:"movie_type"`
}

// GET /api/watchlist/:profileId
func (h *WatchlistHandler) List(c *gin.Context) {
	profileID, ok := parseID(c, "profileId", "profile")
	if !ok {
		return
	}
	items, err := h.watchlist.List(c.Request.Context(), profileID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]watchlistItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toWatchlistItem(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/watchlist/:profileId/:movieId
func (h *WatchlistHandler) Add(c *gin.Context) {
	profileID, ok := parseID(c, "profileId", "profile")
	if !ok {
		return
	}
	var req movieReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	item, added, err := h.watchlist.Add(c.Request.Context(), profileID, usecase.MovieInput{
		MovieID: c.Param("movieId"),
		Title:   req.MovieTitle,
		Poster:  req.MoviePoster,
		Type:    req.MovieType,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !added {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Movie is already in watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Movie added to watchlist",
		"item":    toWatchlistItem(item),
	})
}

// DELETE /api/watchlist/:profileId/:movieId
func (h *WatchlistHandler) Remove(c *gin.Context) {
	profileID, ok := parseID(c, "profileId", "profile")
	if !ok {
		return
	}
	if err := h.watchlist.Remove(c.Request.Context(), profileID, c.Param("movieId")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Movie removed from watchlist"})
}
