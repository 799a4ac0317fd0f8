package handlers

import (
	"log/slog"
	"net/http"

	"streamflix/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	log          *slog.Logger
	subscription *usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(log *slog.Logger, s *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{log: log, subscription: s}
}

// PUT /api/subscription/:userId
func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID, ok := parseID(c, "userId", "user")
	if !ok {
		return
	}
	var req struct {
		SubscriptionPlan string `json:"subscription_plan"`
	}
	if !bindOptionalJSON(c, &req) {
		return
	}

	plan, err := h.subscription.UpdatePlan(c.Request.Context(), userID, req.SubscriptionPlan)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Subscription plan updated successfully",
		"subscription_plan": plan,
	})
}

// GET /api/plans
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": h.subscription.Plans()})
}
