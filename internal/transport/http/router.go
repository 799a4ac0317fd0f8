package handlers

import (
	"log/slog"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"sync"

	"streamflix/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Watchlist    *WatchlistHandler
	History      *HistoryHandler
	Subscription *SubscriptionHandler
	Avatar       *AvatarHandler
}

var registerTagNames sync.Once

// Ошибки валидатора называют поле по json-тегу, а не по имени в структуре
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func NewRouter(log *slog.Logger, h Handlers, auth middleware.Authenticator, allowedOrigins []string) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.GET("/me", middleware.AuthMiddleware(auth), h.Auth.Me)
			authGroup.POST("/logout", h.Auth.Logout)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("", h.Profile.List)
			profiles.POST("", h.Profile.Create)
			profiles.GET("/user/:userId", h.Profile.ListByUser)
			profiles.GET("/:id", h.Profile.Get)
			profiles.PUT("/:id", h.Profile.Update)
			profiles.DELETE("/:id", h.Profile.Delete)
			profiles.PUT("/:id/avatar", h.Profile.UpdateAvatar)
		}

		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("/:profileId", h.Watchlist.List)
			watchlist.POST("/:profileId/:movieId", h.Watchlist.Add)
			watchlist.DELETE("/:profileId/:movieId", h.Watchlist.Remove)
		}

		history := api.Group("/history")
		{
			history.GET("/:profileId", h.History.List)
			history.POST("/:profileId", h.History.Record)
		}

		api.PUT("/subscription/:userId", h.Subscription.Update)
		api.GET("/plans", h.Subscription.Plans)
		api.GET("/avatars", h.Avatar.List)
	}

	return r
}
