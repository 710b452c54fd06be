package mood

import (
	"math"
	"math/rand"
	"testing"

	"lg/canteen-go-api/internal/food"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

// fixedRand returns the queued values in order, then zeros.
type fixedRand struct {
	vals []int
	i    int
}

func (r *fixedRand) Intn(n int) int {
	if r.i >= len(r.vals) {
		return 0
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

func catalog() []food.Menu {
	return []food.Menu{
		{ID: "fried-chicken-rice", Category: food.CategoryRice, CookingMethod: food.CookingFry,
			Proteins: []string{"chicken"}, Calories: f64(850), SodiumMg: f64(1400)},
		{ID: "steamed-fish", Category: food.CategoryRice, CookingMethod: food.CookingSteam,
			Vegetables: []string{"ginger", "scallion"}, Proteins: []string{"fish"}, Calories: f64(520), SodiumMg: f64(500)},
		{ID: "tofu-soup", Category: food.CategorySoup, CookingMethod: food.CookingBoil,
			Vegetables: []string{"cabbage"}, Proteins: []string{"tofu"}, Calories: f64(220), SodiumMg: f64(900)},
		{ID: "pork-noodle", Category: food.CategoryNoodle, CookingMethod: food.CookingBoil,
			Vegetables: []string{"bean sprout"}, Proteins: []string{"pork", "pork ball"}, Calories: f64(600)},
		{ID: "mango-sticky-rice", Category: food.CategoryDessert, CookingMethod: food.CookingSteam,
			Calories: f64(480), SugarG: f64(35)},
		{ID: "spring-roll", Category: food.CategorySnack, CookingMethod: food.CookingFry,
			Vegetables: []string{"carrot"}, Calories: f64(300)},
	}
}

func ids(menus []food.Menu) []string {
	out := make([]string, len(menus))
	for i, m := range menus {
		out[i] = m.ID
	}
	return out
}

func TestSuggest_UnknownMoodAndEmptyCatalog(t *testing.T) {
	if got := Suggest("grumpy", catalog(), Options{}); len(got) != 0 {
		t.Errorf("unknown mood: expected empty, got %v", ids(got))
	}
	if got := Suggest("clean", nil, Options{}); got == nil || len(got) != 0 {
		t.Errorf("empty catalog: expected empty non-nil slice, got %v", got)
	}
}

// TestSuggest_CleanNeverReturnsFriedOrUnhealthy checks the clean preset's
// filters over the fixture and a batch of random menus.
func TestSuggest_CleanNeverReturnsFriedOrUnhealthy(t *testing.T) {
	menus := catalog()
	r := rand.New(rand.NewSource(7))
	cooking := []string{food.CookingFry, food.CookingStir, food.CookingBoil, food.CookingSteam, food.CookingGrill, food.CookingRaw}
	for i := 0; i < 200; i++ {
		m := food.Menu{
			ID:            "rand",
			Category:      food.Categories[r.Intn(len(food.Categories))],
			CookingMethod: cooking[r.Intn(len(cooking))],
			SugarG:        f64(float64(r.Intn(40))),
			SodiumMg:      f64(float64(r.Intn(2000))),
		}
		if r.Intn(2) == 0 {
			m.Vegetables = []string{"kale"}
		}
		if r.Intn(2) == 0 {
			m.HealthScore = intp(r.Intn(101))
		}
		menus = append(menus, m)
	}

	for _, m := range Suggest("clean", menus, Options{}) {
		if m.CookingMethod == food.CookingFry {
			t.Errorf("clean returned fried menu %s", m.ID)
		}
		if m.Score() < 75 {
			t.Errorf("clean returned menu %s with score %d", m.ID, m.Score())
		}
	}
}

func TestSuggest_CleanOrdering(t *testing.T) {
	// steamed-fish: 70+5+5 = 80, tofu-soup: 80; tie on health, lower sodium wins.
	got := ids(Suggest("clean", catalog(), Options{}))
	want := []string{"steamed-fish", "tofu-soup"}
	if len(got) < 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("clean = %v, want prefix %v", got, want)
	}
}

func TestSuggest_HungryFilters(t *testing.T) {
	for _, m := range Suggest("hungry", catalog(), Options{}) {
		if m.Category == food.CategoryDessert || m.Category == food.CategorySnack {
			t.Errorf("hungry returned excluded category %s", m.Category)
		}
		if m.Calories == nil || *m.Calories < 500 {
			t.Errorf("hungry returned low-calorie menu %s", m.ID)
		}
	}
}

func TestSuggest_LazyRestrictsToDrawnCategories(t *testing.T) {
	// Zeros draw the first two categories: rice, noodle.
	got := Suggest("lazy", catalog(), Options{Rand: &fixedRand{}})
	if len(got) == 0 {
		t.Fatal("expected lazy suggestions")
	}
	for _, m := range got {
		if m.Category != food.CategoryRice && m.Category != food.CategoryNoodle {
			t.Errorf("lazy returned category %s outside draw", m.Category)
		}
	}

	off := false
	all := Suggest("lazy", catalog(), Options{RandomizeCategories: &off})
	if len(all) != len(catalog()) {
		t.Errorf("lazy without randomization: got %d menus, want %d", len(all), len(catalog()))
	}
}

func TestDrawCategories_Distinct(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		picked := drawCategories(r, 2)
		if len(picked) != 2 {
			t.Fatalf("expected 2 distinct categories, got %v", picked)
		}
	}
}

func TestTrendScores_MaxIsOne(t *testing.T) {
	logs := []food.Log{
		{MenuID: "a", Quantity: intp(2)},
		{MenuID: "b"},
		{MenuID: "a"},
		{MenuID: "c", Quantity: intp(0)},
	}
	scores := TrendScores(logs)
	var top float64
	for _, v := range scores {
		top = math.Max(top, v)
	}
	if top != 1.0 {
		t.Errorf("max trend = %v, want 1.0", top)
	}
	if scores["b"] != 1.0/3.0 {
		t.Errorf("trend[b] = %v, want 1/3", scores["b"])
	}
	if len(TrendScores(nil)) != 0 {
		t.Error("expected no trend scores without logs")
	}
}

func TestCatalogLogs_IgnoresRemovedMenus(t *testing.T) {
	logs := []food.Log{
		{MenuID: "retired-special", Quantity: intp(10)},
		{MenuID: "spring-roll", Quantity: intp(4)},
		{MenuID: "tofu-soup", Quantity: intp(2)},
	}
	kept := catalogLogs(logs, catalog())
	if len(kept) != 2 {
		t.Fatalf("kept %d logs, want 2", len(kept))
	}
	scores := TrendScores(kept)
	if scores["spring-roll"] != 1.0 {
		t.Errorf("trend[spring-roll] = %v, want 1.0", scores["spring-roll"])
	}
	if scores["tofu-soup"] != 0.5 {
		t.Errorf("trend[tofu-soup] = %v, want 0.5", scores["tofu-soup"])
	}
}

func TestSuggest_TrendingUsesLogs(t *testing.T) {
	logs := []food.Log{
		{MenuID: "spring-roll", Quantity: intp(5)},
		{MenuID: "tofu-soup", Quantity: intp(2)},
	}
	got := ids(Suggest("trending", catalog(), Options{Logs: logs}))
	if got[0] != "spring-roll" || got[1] != "tofu-soup" {
		t.Errorf("trending = %v, want spring-roll then tofu-soup first", got)
	}
}

func TestSatiety(t *testing.T) {
	cases := []struct {
		name string
		m    food.Menu
		want float64
	}{
		{"empty", food.Menu{}, 0},
		{"saturated", food.Menu{Calories: f64(1200), Proteins: []string{"a", "b", "c", "d"}, Vegetables: []string{"a", "b", "c"}}, 1},
		{"midpoint", food.Menu{Calories: f64(650), Proteins: []string{"a"}}, 0.2*0.5 + 0.5/3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Satiety(tc.m); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Satiety = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPresets_AllResolvable(t *testing.T) {
	for _, p := range Presets() {
		if _, ok := Lookup(p.ID); !ok {
			t.Errorf("preset %s not found by Lookup", p.ID)
		}
		if len(p.SortBy) == 0 {
			t.Errorf("preset %s has no sort keys", p.ID)
		}
	}
}

func TestPresets_ReturnCopies(t *testing.T) {
	list := Presets()
	list[0].ExcludeCategories[0] = "mutated"
	list[0].SortBy[0].Metric = MetricTrend

	p, _ := Lookup(list[0].ID)
	if p.ExcludeCategories[0] == "mutated" || p.SortBy[0].Metric == MetricTrend {
		t.Fatal("editing a returned preset changed the package table")
	}
	p.ExcludeCategories[0] = "again"
	if again, _ := Lookup(p.ID); again.ExcludeCategories[0] == "again" {
		t.Fatal("editing a looked-up preset changed the package table")
	}
}
