package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/canteen-go-api/internal/food"
	"lg/canteen-go-api/internal/recommend"
)

// loadMenus reads the whole catalog. Used as the menu cache loader.
func (h *Handler) loadMenus(ctx context.Context) ([]food.Menu, error) {
	return queryMany[food.Menu](h.db, ctx,
		"SELECT * FROM menus ORDER BY location, name", pgx.NamedArgs{})
}

// listMenus returns the catalog with health scores, optionally filtered.
// GET /api/menus?location=&category=
func (h *Handler) listMenus(c *gin.Context) {
	location := c.Query("location")
	category := c.Query("category")
	// Reject unknown values with 400 rather than silently returning nothing.
	if location != "" && !food.ValidLocations[location] {
		apiError(c, http.StatusBadRequest, "location must be one of: central, engineering, science, dormitory")
		return
	}
	if category != "" && !food.ValidCategories[category] {
		apiError(c, http.StatusBadRequest, "category must be one of: rice, noodle, soup, snack, dessert")
		return
	}

	menus, _, err := h.menus.get(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch menus")
		return
	}

	out := make([]menuView, 0, len(menus))
	for _, m := range menus {
		if location != "" && m.Location != location {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		out = append(out, newMenuView(m))
	}
	c.JSON(http.StatusOK, out)
}

// getMenu returns one catalog item.
// GET /api/menus/:id
func (h *Handler) getMenu(c *gin.Context) {
	_, idx, err := h.menus.get(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch menus")
		return
	}
	m, ok := idx[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "menu not found")
		return
	}
	c.JSON(http.StatusOK, newMenuView(m))
}

// getPopularBoard ranks menus by quantity logged publicly in the last days.
// GET /api/boards/popular?days=7&limit=9
func (h *Handler) getPopularBoard(c *gin.Context) {
	days, ok := intQuery(c, "days", 7, 1, 90)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", recommend.DefaultLimit, 1, 50)
	if !ok {
		return
	}

	menus, logs, err := h.loadMenusAndLogs(c, func(ctx context.Context) ([]food.Log, error) {
		return h.publicLogsSince(ctx, h.clock().AddDate(0, 0, -days))
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load popular menus")
		return
	}

	items := recommend.PopularWithCounts(menus, logs, limit)
	resp := popularBoardResponse{Days: days, Items: make([]popularEntry, len(items))}
	for i, it := range items {
		resp.Items[i] = popularEntry{menuView: newMenuView(it.Menu), Quantity: it.Quantity}
	}
	c.JSON(http.StatusOK, resp)
}

// getHealthyBoard lists the healthiest menus.
// GET /api/boards/healthy?limit=9
func (h *Handler) getHealthyBoard(c *gin.Context) {
	limit, ok := intQuery(c, "limit", recommend.DefaultLimit, 1, 50)
	if !ok {
		return
	}
	menus, _, err := h.menus.get(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch menus")
		return
	}
	c.JSON(http.StatusOK, newMenuViews(recommend.Healthiest(menus, limit)))
}
