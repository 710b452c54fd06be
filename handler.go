package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Handler holds shared dependencies (db pool, menu cache, clock) for all route handlers.
type Handler struct {
	db    *pgxpool.Pool
	menus *menuCache
	loc   *time.Location
	now   func() time.Time // overridable for tests
}

// clock returns the current time in the canteen's timezone. Streaks and
// recommendation windows are computed on these calendar days.
func (h *Handler) clock() time.Time {
	loc := h.loc
	if loc == nil {
		loc = time.Local
	}
	if h.now != nil {
		return h.now().In(loc)
	}
	return time.Now().In(loc)
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
// pgx.ErrNoRows is returned as-is and not logged.
func queryOne[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Error().Err(err).Str("fn", "queryOne").Msg("query failed")
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Error().Err(err).Str("fn", "queryOne").Msg("scan failed")
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
// An empty result is an empty, non-nil slice.
func queryMany[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Error().Err(err).Str("fn", "queryMany").Msg("query failed")
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Error().Err(err).Str("fn", "queryMany").Msg("scan failed")
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// intQuery reads an optional integer query param within [lo, hi]. On a bad
// value it writes a 400 and returns ok=false.
func intQuery(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("%s must be an integer between %d and %d", name, lo, hi))
		return 0, false
	}
	return v, true
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// Neon closes idle connections after ~5 minutes.
func getDBPool(dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from Neon's server-side prepared statement cache after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("DB pool ready")
	return pool
}

// health reports liveness, and database reachability when a pool is configured.
// GET /health (public).
func (h *Handler) health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/health", h.health)
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/menus", h.listMenus)
	api.GET("/menus/:id", h.getMenu)
	api.GET("/boards/popular", h.getPopularBoard)
	api.GET("/boards/healthy", h.getHealthyBoard)
	api.GET("/moods", h.listMoods)
	api.GET("/moods/:id/suggestions", h.getMoodSuggestions)
	api.GET("/recommendations", h.getRecommendations)
	api.GET("/logs", h.listMealLogs)
	api.POST("/logs", h.createMealLog)
	api.PATCH("/logs/:id", h.patchMealLog)
	api.DELETE("/logs/:id", h.deleteMealLog)
	api.GET("/stats", h.getStats)
	api.GET("/profile", h.getBodyProfile)
	api.PUT("/profile", h.putBodyProfile)
}
