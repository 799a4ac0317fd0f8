package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/imaging"
	"streamflix/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
)

// writeError переводит доменные ошибки в статус и публичное сообщение.
// Все непредвиденное уходит в лог с request id и отдается как 500.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	var (
		validation *domain.ValidationError
		badImage   *imaging.InvalidImageError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &badImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data: " + badImage.Reason})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrInvalidPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription plan"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	case errors.Is(err, domain.ErrWatchlistItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in watchlist"})
	default:
		_ = c.Error(err)
		log.Error("unhandled error",
			"path", c.FullPath(),
			"request_id", middleware.GetRequestID(c),
			"err", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseID(c *gin.Context, param, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " id"})
		return 0, false
	}
	return uint(id), true
}

// maxBodyBytes ограничивает тело запроса с base64-аватаром.
const maxBodyBytes = 16 << 20

// bindOptionalJSON разбирает тело, если оно есть. Пустое тело не ошибка.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if c.Request.ContentLength > maxBodyBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body too large"})
		return false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return false
	}
	return true
}
