package main

import (
	"time"

	"lg/canteen-go-api/internal/badge"
	"lg/canteen-go-api/internal/food"
)

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// menuView is a catalog item with its health score resolved and the
// presentation metadata for that score.
type menuView struct {
	food.Menu
	Score      int        `json:"score"`
	ScoreColor string     `json:"score_color"`
	ScoreLabel food.Label `json:"score_label"`
}

func newMenuView(m food.Menu) menuView {
	score := m.Score()
	return menuView{
		Menu:       m,
		Score:      score,
		ScoreColor: food.ScoreColor(score),
		ScoreLabel: food.ScoreLabel(score),
	}
}

func newMenuViews(menus []food.Menu) []menuView {
	out := make([]menuView, len(menus))
	for i, m := range menus {
		out[i] = newMenuView(m)
	}
	return out
}

// mealLogView is a log joined in memory with its menu. Menu is null when the
// referenced menu no longer exists.
type mealLogView struct {
	food.Log
	Menu *menuView `json:"menu"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// createMealLogRequest is the request body for POST /api/logs. Visibility
// defaults to private, quantity to 1, timestamp to now.
type createMealLogRequest struct {
	MenuID     string            `json:"menu_id"`
	Faculty    string            `json:"faculty"`
	Visibility *string           `json:"visibility"`
	Quantity   *int              `json:"quantity"`
	Timestamp  *food.EpochMillis `json:"timestamp"`
}

// patchMealLogRequest is the request body for PATCH /api/logs/:id. Visibility
// is the only mutable field of a log.
type patchMealLogRequest struct {
	Visibility *string `json:"visibility"`
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// popularEntry is one row of the popularity board.
type popularEntry struct {
	menuView
	Quantity int `json:"quantity"`
}

// popularBoardResponse is the response shape for GET /api/boards/popular.
type popularBoardResponse struct {
	Days  int            `json:"days"`
	Items []popularEntry `json:"items"`
}

// moodSuggestionsResponse is the response shape for GET /api/moods/:id/suggestions.
type moodSuggestionsResponse struct {
	Mood  string     `json:"mood"`
	Items []menuView `json:"items"`
}

// recommendationEntry is a recommended menu with its personalized score.
type recommendationEntry struct {
	menuView
	PersonalScore float64 `json:"personal_score"`
	Penalty       float64 `json:"repeat_penalty"`
}

// recommendationsResponse is the response shape for GET /api/recommendations.
type recommendationsResponse struct {
	WindowDays int                   `json:"window_days"`
	Items      []recommendationEntry `json:"items"`
}

// statsResponse is the response shape for GET /api/stats.
type statsResponse struct {
	Stats      badge.Stats      `json:"stats"`
	Badges     []badge.Badge    `json:"badges"`
	Categories badge.Categories `json:"categories"`
}
