package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lg/canteen-go-api/internal/food"
	"lg/canteen-go-api/internal/mood"
)

func f64(v float64) *float64 { return &v }

// fixtureMenus is a small catalog served by the test menu cache.
func fixtureMenus() []food.Menu {
	return []food.Menu{
		{ID: "khao-man-gai", Name: "Khao Man Gai", Location: food.LocationCentral, Category: food.CategoryRice,
			CookingMethod: food.CookingBoil, Vegetables: []string{"cucumber"}, Proteins: []string{"chicken"}},
		{ID: "moo-tod", Name: "Moo Tod", Location: food.LocationEngineering, Category: food.CategoryRice,
			CookingMethod: food.CookingFry, Proteins: []string{"pork"}, SodiumMg: f64(1500)},
		{ID: "tofu-soup", Name: "Tofu Soup", Location: food.LocationCentral, Category: food.CategorySoup,
			CookingMethod: food.CookingBoil, Vegetables: []string{"cabbage"}, Proteins: []string{"tofu"}},
		{ID: "bua-loy", Name: "Bua Loy", Location: food.LocationScience, Category: food.CategoryDessert,
			CookingMethod: food.CookingBoil, SugarG: f64(32)},
	}
}

// setupHandlerTest builds a router without auth or a database. Only handler
// paths that stop before touching the database can be exercised.
func setupHandlerTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		loc: time.UTC,
		now: func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
	h.menus = newMenuCache(time.Minute, func(ctx context.Context) ([]food.Menu, error) {
		return fixtureMenus(), nil
	})

	router := gin.New()
	router.GET("/health", h.health)
	// Skip auth middleware for tests; set a dummy user_id
	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	})
	api.GET("/menus", h.listMenus)
	api.GET("/menus/:id", h.getMenu)
	api.GET("/boards/popular", h.getPopularBoard)
	api.GET("/boards/healthy", h.getHealthyBoard)
	api.GET("/moods", h.listMoods)
	api.GET("/moods/:id/suggestions", h.getMoodSuggestions)
	api.GET("/recommendations", h.getRecommendations)
	api.POST("/logs", h.createMealLog)
	api.PATCH("/logs/:id", h.patchMealLog)
	api.PUT("/profile", h.putBodyProfile)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth_NoDB(t *testing.T) {
	w := doRequest(setupHandlerTest(), "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	router := gin.New()
	router.GET("/api/stats", h.authMiddleware(), h.getStats)

	for _, header := range []string{"", "Token abc", "Bearer ", "Bearer    "} {
		req := httptest.NewRequest("GET", "/api/stats", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestListMenus(t *testing.T) {
	router := setupHandlerTest()

	w := doRequest(router, "GET", "/api/menus", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var all []menuView
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 menus, got %d", len(all))
	}
	// moo-tod: 70 - 20 fry - 10 sodium = 40
	for _, m := range all {
		if m.ID == "moo-tod" {
			if m.Score != 40 || m.ScoreColor != "text-amber-600" {
				t.Errorf("moo-tod score = %d %s, want 40 text-amber-600", m.Score, m.ScoreColor)
			}
		}
	}

	w = doRequest(router, "GET", "/api/menus?location=central&category=soup", "")
	var filtered []menuView
	json.Unmarshal(w.Body.Bytes(), &filtered)
	if len(filtered) != 1 || filtered[0].ID != "tofu-soup" {
		t.Errorf("expected only tofu-soup, got %+v", filtered)
	}
}

func TestListMenus_InvalidFilters(t *testing.T) {
	router := setupHandlerTest()
	for _, q := range []string{"?location=library", "?category=pizza"} {
		w := doRequest(router, "GET", "/api/menus"+q, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestGetMenu(t *testing.T) {
	router := setupHandlerTest()

	w := doRequest(router, "GET", "/api/menus/tofu-soup", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var m menuView
	json.Unmarshal(w.Body.Bytes(), &m)
	// 70 + 5 veg + 5 tofu
	if m.Score != 80 || m.ScoreLabel.EN != "Excellent" {
		t.Errorf("tofu-soup = %d %q, want 80 Excellent", m.Score, m.ScoreLabel.EN)
	}

	w = doRequest(router, "GET", "/api/menus/pad-thai", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown menu, got %d", w.Code)
	}
}

func TestHealthyBoard(t *testing.T) {
	router := setupHandlerTest()

	w := doRequest(router, "GET", "/api/boards/healthy?limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []menuView
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 2 || got[0].ID != "tofu-soup" || got[1].ID != "khao-man-gai" {
		t.Errorf("unexpected healthy board: %+v", got)
	}

	w = doRequest(router, "GET", "/api/boards/healthy?limit=0", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for limit=0, got %d", w.Code)
	}
}

func TestQueryParamValidation(t *testing.T) {
	router := setupHandlerTest()
	cases := []string{
		"/api/boards/popular?days=0",
		"/api/boards/popular?days=abc",
		"/api/boards/popular?limit=500",
		"/api/moods/clean/suggestions?limit=-1",
		"/api/recommendations?window_days=91",
		"/api/recommendations?limit=x",
	}
	for _, path := range cases {
		t.Run(path, func(t *testing.T) {
			w := doRequest(router, "GET", path, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListMoods(t *testing.T) {
	w := doRequest(setupHandlerTest(), "GET", "/api/moods", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var presets []mood.Preset
	if err := json.Unmarshal(w.Body.Bytes(), &presets); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(presets) != 6 || presets[0].ID != "hungry" {
		t.Errorf("unexpected presets: %d, first %q", len(presets), presets[0].ID)
	}
}

func TestMoodSuggestions_UnknownMood(t *testing.T) {
	w := doRequest(setupHandlerTest(), "GET", "/api/moods/grumpy/suggestions", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateMealLog_Validation(t *testing.T) {
	router := setupHandlerTest()
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed json", `{"menu_id":`, "invalid request body"},
		{"missing menu", `{"faculty":"engineering"}`, "menu_id is required"},
		{"unknown menu", `{"menu_id":"pad-thai"}`, "menu_id does not match any menu"},
		{"bad visibility", `{"menu_id":"tofu-soup","visibility":"friends"}`, "visibility must be one of: public, private"},
		{"zero quantity", `{"menu_id":"tofu-soup","quantity":0}`, "quantity must be a positive integer"},
		{"negative quantity", `{"menu_id":"tofu-soup","quantity":-2}`, "quantity must be a positive integer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/logs", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var resp map[string]string
			json.Unmarshal(w.Body.Bytes(), &resp)
			if resp["error"] != tc.wantErr {
				t.Errorf("error = %q, want %q", resp["error"], tc.wantErr)
			}
		})
	}
}

func TestValidateCreateMealLog_Defaults(t *testing.T) {
	body := createMealLogRequest{MenuID: "  tofu-soup "}
	idx := food.Index(fixtureMenus())
	if msg := validateCreateMealLog(&body, idx); msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}
	if body.MenuID != "tofu-soup" {
		t.Errorf("menu_id not trimmed: %q", body.MenuID)
	}
	if body.Visibility == nil || *body.Visibility != food.VisibilityPrivate {
		t.Errorf("visibility default = %v, want private", body.Visibility)
	}
}

func TestPatchMealLog_Validation(t *testing.T) {
	router := setupHandlerTest()
	for _, body := range []string{`{}`, `{"visibility":"everyone"}`, `not json`} {
		w := doRequest(router, "PATCH", "/api/logs/01HZX", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestPutBodyProfile_Validation(t *testing.T) {
	router := setupHandlerTest()
	cases := []struct {
		name       string
		body       string
		wantErrors []string
		wantError  string
	}{
		{"out of range", `{"height_cm":90,"weight_kg":350,"age":30}`,
			[]string{"height_cm must be between 100 and 250 cm", "weight_kg must be between 20 and 300 kg"}, "invalid profile"},
		{"age too low", `{"age":5}`, []string{"age must be between 10 and 120 years"}, "invalid profile"},
		{"unknown gender", `{"gender":"robot"}`, nil, "gender must be one of: male, female, other"},
		{"unknown activity", `{"activity_level":"extreme"}`, nil,
			"activity_level must be one of: sedentary, light, moderate, active, very_active"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "PUT", "/api/profile", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var resp struct {
				Error  string   `json:"error"`
				Errors []string `json:"errors"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if resp.Error != tc.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tc.wantError)
			}
			if len(resp.Errors) != len(tc.wantErrors) {
				t.Fatalf("errors = %v, want %v", resp.Errors, tc.wantErrors)
			}
			for i := range tc.wantErrors {
				if resp.Errors[i] != tc.wantErrors[i] {
					t.Errorf("errors[%d] = %q, want %q", i, resp.Errors[i], tc.wantErrors[i])
				}
			}
		})
	}
}
