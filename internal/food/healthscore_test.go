package food

import (
	"encoding/json"
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

// baseMenu is the end-to-end fixture: stir-fried rice with one vegetable and fish.
func baseMenu() Menu {
	return Menu{
		ID:            "m1",
		Category:      CategoryRice,
		CookingMethod: CookingStir,
		Vegetables:    []string{"kale"},
		Proteins:      []string{"fish"},
		SugarG:        f64(5),
		SodiumMg:      f64(400),
	}
}

func TestHealthScore_EndToEnd(t *testing.T) {
	m := baseMenu()
	if got := HealthScore(m); got != 80 {
		t.Errorf("HealthScore = %d, want 80", got)
	}
	m.CookingMethod = CookingFry
	if got := HealthScore(m); got != 60 {
		t.Errorf("HealthScore(fry) = %d, want 60", got)
	}
}

func TestHealthScore_Rules(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(m *Menu)
		want  int
	}{
		{"bare menu", func(m *Menu) { *m = Menu{} }, 70},
		{"dessert", func(m *Menu) { m.Category = CategoryDessert }, 65},
		{"high sugar", func(m *Menu) { m.SugarG = f64(21) }, 70},
		{"sugar at threshold", func(m *Menu) { m.SugarG = f64(20) }, 80},
		{"high sodium", func(m *Menu) { m.SodiumMg = f64(1201) }, 70},
		{"no vegetables", func(m *Menu) { m.Vegetables = nil }, 75},
		{"tofu substring", func(m *Menu) { m.Proteins = []string{"silken tofu"} }, 80},
		{"pork only", func(m *Menu) { m.Proteins = []string{"pork"} }, 75},
		{"nil nutrition", func(m *Menu) { m.SugarG, m.SodiumMg = nil, nil }, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := baseMenu()
			tc.mutFn(&m)
			if got := HealthScore(m); got != tc.want {
				t.Errorf("HealthScore = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestHealthScore_Bounds stacks every penalty and every bonus and checks the
// result stays in range and is stable across calls.
func TestHealthScore_Bounds(t *testing.T) {
	worst := Menu{Category: CategoryDessert, CookingMethod: CookingFry, SugarG: f64(90), SodiumMg: f64(3000)}
	best := baseMenu()
	for _, m := range []Menu{worst, best, {}} {
		got := HealthScore(m)
		if got < 0 || got > 100 {
			t.Errorf("HealthScore out of range: %d", got)
		}
		if again := HealthScore(m); again != got {
			t.Errorf("HealthScore not deterministic: %d then %d", got, again)
		}
	}
	if got := HealthScore(worst); got != 15 {
		t.Errorf("worst HealthScore = %d, want 15", got)
	}
}

func TestMenuScore_PrefersCachedValue(t *testing.T) {
	m := baseMenu()
	cached := 42
	m.HealthScore = &cached
	if got := m.Score(); got != 42 {
		t.Errorf("Score() = %d, want cached 42", got)
	}
	m.HealthScore = nil
	if got := m.Score(); got != 80 {
		t.Errorf("Score() = %d, want computed 80", got)
	}
}

func TestScoreBands(t *testing.T) {
	cases := []struct {
		score int
		color string
		label string
	}{
		{100, "text-green-600", "Excellent"},
		{80, "text-green-600", "Excellent"},
		{79, "text-lime-600", "Good"},
		{60, "text-lime-600", "Good"},
		{40, "text-amber-600", "Fair"},
		{39, "text-red-600", "Poor"},
		{0, "text-red-600", "Poor"},
	}
	for _, tc := range cases {
		if got := ScoreColor(tc.score); got != tc.color {
			t.Errorf("ScoreColor(%d) = %q, want %q", tc.score, got, tc.color)
		}
		if got := ScoreLabel(tc.score).EN; got != tc.label {
			t.Errorf("ScoreLabel(%d) = %q, want %q", tc.score, got, tc.label)
		}
	}
}

func TestLogQty(t *testing.T) {
	zero, three, neg := 0, 3, -2
	cases := []struct {
		name string
		q    *int
		want int
	}{
		{"nil", nil, 1},
		{"zero", &zero, 1},
		{"three", &three, 3},
		{"negative passes through", &neg, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Log{Quantity: tc.q}).Qty(); got != tc.want {
				t.Errorf("Qty() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEpochMillisJSON(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b, err := json.Marshal(EpochMillis{ts})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "1772366400000" {
		t.Errorf("marshal = %s, want 1772366400000", b)
	}
	var e EpochMillis
	if err := json.Unmarshal(b, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.Equal(ts) {
		t.Errorf("round trip = %v, want %v", e.Time, ts)
	}
}

func TestResolve_KeepsUnresolvedLogs(t *testing.T) {
	idx := Index([]Menu{{ID: "a"}})
	entries := Resolve([]Log{{MenuID: "a"}, {MenuID: "missing"}}, idx)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Menu == nil || entries[0].Menu.ID != "a" {
		t.Errorf("expected first entry resolved to menu a")
	}
	if entries[1].Menu != nil {
		t.Errorf("expected second entry unresolved")
	}
}
