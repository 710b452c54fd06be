package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/canteen-go-api/internal/food"
	"lg/canteen-go-api/internal/recommend"
)

// getRecommendations ranks the catalog for the caller from their recent logs.
// GET /api/recommendations?window_days=7&limit=9
func (h *Handler) getRecommendations(c *gin.Context) {
	userID := c.GetInt("user_id")
	windowDays, ok := intQuery(c, "window_days", recommend.DefaultWindowDays, 1, 90)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", recommend.DefaultLimit, 1, 50)
	if !ok {
		return
	}

	now := h.clock()
	menus, logs, err := h.loadMenusAndLogs(c, func(ctx context.Context) ([]food.Log, error) {
		// One extra day covers the midnight-aligned window start; Rank trims the rest.
		return h.userLogsSince(ctx, userID, now.AddDate(0, 0, -(windowDays + 1)))
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load recommendations")
		return
	}

	ranked := recommend.Rank(menus, logs, recommend.Options{WindowDays: windowDays, Now: now})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	resp := recommendationsResponse{WindowDays: windowDays, Items: make([]recommendationEntry, len(ranked))}
	for i, r := range ranked {
		resp.Items[i] = recommendationEntry{
			menuView:      newMenuView(r.Menu),
			PersonalScore: r.Score,
			Penalty:       r.Penalty,
		}
	}
	c.JSON(http.StatusOK, resp)
}
