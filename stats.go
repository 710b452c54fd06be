package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/canteen-go-api/internal/badge"
	"lg/canteen-go-api/internal/food"
)

// getStats returns the caller's aggregate stats and badge progress, computed
// from their full log history.
// GET /api/stats.
func (h *Handler) getStats(c *gin.Context) {
	userID := c.GetInt("user_id")

	menus, logs, err := h.loadMenusAndLogs(c, func(ctx context.Context) ([]food.Log, error) {
		return h.userLogsSince(ctx, userID, time.Time{})
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load stats")
		return
	}

	now := h.clock()
	entries := food.Resolve(logs, food.Index(menus))
	stats := badge.ComputeStats(entries, now)
	badges := badge.SortBadges(badge.CheckBadges(stats, entries, now))

	c.JSON(http.StatusOK, statsResponse{
		Stats:      stats,
		Badges:     badges,
		Categories: badge.Categorize(badges),
	})
}
