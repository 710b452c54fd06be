package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"lg/canteen-go-api/internal/food"
)

// validVisibilities is the set of allowed values for meal_logs.visibility.
var validVisibilities = map[string]bool{
	food.VisibilityPublic:  true,
	food.VisibilityPrivate: true,
}

/* ─── Storage ────────────────────────────────────────────────────────── */

// publicLogsSince returns every user's public logs at or after since.
func (h *Handler) publicLogsSince(ctx context.Context, since time.Time) ([]food.Log, error) {
	return queryMany[food.Log](h.db, ctx,
		`SELECT * FROM meal_logs
		 WHERE visibility = 'public' AND logged_at >= @since
		 ORDER BY logged_at`,
		pgx.NamedArgs{"since": since})
}

// userLogsSince returns one user's logs at or after since, oldest first. A
// zero since returns the full history.
func (h *Handler) userLogsSince(ctx context.Context, userID int, since time.Time) ([]food.Log, error) {
	return queryMany[food.Log](h.db, ctx,
		`SELECT * FROM meal_logs
		 WHERE user_id = @userID AND logged_at >= @since
		 ORDER BY logged_at`,
		pgx.NamedArgs{"userID": userID, "since": since})
}

// loadMenusAndLogs fetches the catalog and a log set concurrently.
func (h *Handler) loadMenusAndLogs(c *gin.Context, loadLogs func(ctx context.Context) ([]food.Log, error)) ([]food.Menu, []food.Log, error) {
	var menus []food.Menu
	var logs []food.Log

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		menus, _, err = h.menus.get(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = loadLogs(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return menus, logs, nil
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// listMealLogs returns the caller's logs, newest first, joined with their menus.
// GET /api/logs?days=N (omit days for the full history).
func (h *Handler) listMealLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	days, ok := intQuery(c, "days", 0, 1, 3650)
	if !ok {
		return
	}
	var since time.Time
	if days > 0 {
		since = h.clock().AddDate(0, 0, -days)
	}

	_, idx, err := h.menus.get(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch menus")
		return
	}
	logs, err := h.userLogsSince(c, userID, since)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch logs")
		return
	}

	entries := food.Resolve(logs, idx)
	out := make([]mealLogView, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		v := mealLogView{Log: entries[i].Log}
		if m := entries[i].Menu; m != nil {
			mv := newMenuView(*m)
			v.Menu = &mv
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, out)
}

// validateCreateMealLog checks a create request against the catalog index and
// fills in defaults. It returns a client-facing message on failure.
func validateCreateMealLog(body *createMealLogRequest, idx map[string]food.Menu) string {
	body.MenuID = strings.TrimSpace(body.MenuID)
	if body.MenuID == "" {
		return "menu_id is required"
	}
	if _, ok := idx[body.MenuID]; !ok {
		return "menu_id does not match any menu"
	}
	if body.Visibility == nil {
		v := food.VisibilityPrivate
		body.Visibility = &v
	}
	if !validVisibilities[*body.Visibility] {
		return "visibility must be one of: public, private"
	}
	if body.Quantity != nil && *body.Quantity < 1 {
		return "quantity must be a positive integer"
	}
	return ""
}

// createMealLog records that the caller ate a menu item.
// POST /api/logs. Defaults timestamp to now and visibility to private.
func (h *Handler) createMealLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createMealLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	_, idx, err := h.menus.get(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch menus")
		return
	}
	if msg := validateCreateMealLog(&body, idx); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	loggedAt := h.clock()
	if body.Timestamp != nil && !body.Timestamp.IsZero() {
		loggedAt = body.Timestamp.Time
	}
	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	l, err := queryOne[food.Log](h.db, c,
		`INSERT INTO meal_logs (id, user_id, menu_id, faculty, visibility, quantity, logged_at)
		 VALUES (@id, @userID, @menuID, @faculty, @visibility, @quantity, @loggedAt)
		 RETURNING *`,
		pgx.NamedArgs{
			"id": ulid.Make().String(), "userID": userID, "menuID": body.MenuID,
			"faculty": strings.TrimSpace(body.Faculty), "visibility": *body.Visibility,
			"quantity": quantity, "loggedAt": loggedAt,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create log")
		return
	}

	c.JSON(http.StatusCreated, l)
}

// patchMealLog toggles a log's visibility. No other field of a log can change.
// PATCH /api/logs/:id.
func (h *Handler) patchMealLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body patchMealLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Visibility == nil {
		apiError(c, http.StatusBadRequest, "visibility is required")
		return
	}
	if !validVisibilities[*body.Visibility] {
		apiError(c, http.StatusBadRequest, "visibility must be one of: public, private")
		return
	}

	l, err := queryOne[food.Log](h.db, c,
		`UPDATE meal_logs SET visibility = @visibility
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID, "visibility": *body.Visibility})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "log not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update log")
		return
	}

	c.JSON(http.StatusOK, l)
}

// deleteMealLog removes one of the caller's logs. Returns 204 on success.
// DELETE /api/logs/:id.
func (h *Handler) deleteMealLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM meal_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "log not found")
		return
	}

	c.Status(http.StatusNoContent)
}
