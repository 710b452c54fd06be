package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/canteen-go-api/internal/food"
	"lg/canteen-go-api/internal/mood"
	"lg/canteen-go-api/internal/recommend"
)

// trendWindowDays is how far back public logs feed the mood trend metric.
const trendWindowDays = 7

// listMoods returns the mood presets for the picker.
// GET /api/moods.
func (h *Handler) listMoods(c *gin.Context) {
	c.JSON(http.StatusOK, mood.Presets())
}

// getMoodSuggestions filters and ranks the catalog for a mood. Public logs
// from the last week drive the trend metric.
// GET /api/moods/:id/suggestions?limit=9
func (h *Handler) getMoodSuggestions(c *gin.Context) {
	id := c.Param("id")
	if _, ok := mood.Lookup(id); !ok {
		apiError(c, http.StatusNotFound, "mood not found")
		return
	}
	limit, ok := intQuery(c, "limit", recommend.DefaultLimit, 1, 50)
	if !ok {
		return
	}

	menus, logs, err := h.loadMenusAndLogs(c, func(ctx context.Context) ([]food.Log, error) {
		return h.publicLogsSince(ctx, h.clock().AddDate(0, 0, -trendWindowDays))
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load suggestions")
		return
	}

	suggested := mood.Suggest(id, menus, mood.Options{Logs: logs})
	if len(suggested) > limit {
		suggested = suggested[:limit]
	}
	c.JSON(http.StatusOK, moodSuggestionsResponse{Mood: id, Items: newMenuViews(suggested)})
}
