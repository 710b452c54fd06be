// Package mood filters and ranks the menu catalog for a named craving or
// intent ("very hungry", "clean eating", ...).
package mood

import (
	"math/rand"
	"sort"

	"lg/canteen-go-api/internal/food"
)

// Metrics holds the seven normalized per-menu metrics. Presets reuse the type
// for their weights.
type Metrics struct {
	Calorie float64 `json:"calorie,omitempty"`
	Protein float64 `json:"protein,omitempty"`
	Satiety float64 `json:"satiety,omitempty"`
	Health  float64 `json:"health,omitempty"`
	Sodium  float64 `json:"sodium,omitempty"`
	Sugar   float64 `json:"sugar,omitempty"`
	Trend   float64 `json:"trend,omitempty"`
}

func (m Metrics) get(k Metric) float64 {
	switch k {
	case MetricCalorie:
		return m.Calorie
	case MetricProtein:
		return m.Protein
	case MetricSatiety:
		return m.Satiety
	case MetricHealth:
		return m.Health
	case MetricSodium:
		return m.Sodium
	case MetricSugar:
		return m.Sugar
	case MetricTrend:
		return m.Trend
	}
	return 0
}

// weighted returns the dot product of the metrics and the weights.
func (m Metrics) weighted(w Metrics) float64 {
	return m.Calorie*w.Calorie + m.Protein*w.Protein + m.Satiety*w.Satiety +
		m.Health*w.Health + m.Sodium*w.Sodium + m.Sugar*w.Sugar + m.Trend*w.Trend
}

// Normalization ceilings.
const (
	calorieCeiling = 1000.0
	satietyCalLow  = 300.0
	satietyCalHigh = 1000.0
	ingredientCap  = 3.0
	sodiumCeiling  = 2000.0
	sugarCeiling   = 50.0
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Satiety estimates how filling a menu is, in [0,1]: calories ramping from
// 300 to 1000 kcal (0.2), protein ingredients up to 3 (0.5), vegetable
// ingredients up to 3 (0.3).
func Satiety(m food.Menu) float64 {
	cal := clamp01((deref(m.Calories) - satietyCalLow) / (satietyCalHigh - satietyCalLow))
	prot := clamp01(float64(len(m.Proteins)) / ingredientCap)
	veg := clamp01(float64(len(m.Vegetables)) / ingredientCap)
	return 0.2*cal + 0.5*prot + 0.3*veg
}

// TrendScores returns each logged menu's total quantity divided by the largest
// total in the log set. Menus absent from the logs have no entry (score 0).
func TrendScores(logs []food.Log) map[string]float64 {
	totals := make(map[string]float64)
	for _, l := range logs {
		totals[l.MenuID] += float64(l.Qty())
	}
	var top float64
	for _, q := range totals {
		if q > top {
			top = q
		}
	}
	scores := make(map[string]float64, len(totals))
	if top <= 0 {
		return scores
	}
	for id, q := range totals {
		scores[id] = q / top
	}
	return scores
}

// catalogLogs drops logs whose menu is no longer in the catalog, so the most
// logged catalog menu always has a trend of 1.0.
func catalogLogs(logs []food.Log, menus []food.Menu) []food.Log {
	known := make(map[string]bool, len(menus))
	for _, m := range menus {
		known[m.ID] = true
	}
	out := make([]food.Log, 0, len(logs))
	for _, l := range logs {
		if known[l.MenuID] {
			out = append(out, l)
		}
	}
	return out
}

// Measure computes the normalized metrics of one menu. Missing nutrition
// facts contribute 0.
func Measure(m food.Menu, trend map[string]float64) Metrics {
	return Metrics{
		Calorie: clamp01(deref(m.Calories) / calorieCeiling),
		Protein: clamp01(float64(len(m.Proteins)) / ingredientCap),
		Satiety: Satiety(m),
		Health:  float64(m.Score()) / 100,
		Sodium:  clamp01(deref(m.SodiumMg) / sodiumCeiling),
		Sugar:   clamp01(deref(m.SugarG) / sugarCeiling),
		Trend:   trend[m.ID],
	}
}

// Rand is the random source used by presets that draw categories.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Options tunes a Suggest call.
type Options struct {
	// Logs feed the trend metric. Without logs every trend score is 0.
	Logs []food.Log
	// RandomizeCategories overrides the preset's random category draw when set.
	RandomizeCategories *bool
	// Rand defaults to the process-wide source.
	Rand Rand
}

type scored struct {
	menu      food.Menu
	metrics   Metrics
	composite float64
}

// Suggest filters menus through the preset's predicates and ranks the
// survivors by its sort keys, falling back to the weighted composite score.
// An unknown mood id or an empty catalog yields an empty list.
func Suggest(moodID string, menus []food.Menu, opts Options) []food.Menu {
	p, ok := Lookup(moodID)
	if !ok || len(menus) == 0 {
		return []food.Menu{}
	}
	if opts.Rand == nil {
		opts.Rand = globalRand{}
	}

	candidates := filter(p, menus)

	randomize := p.RandomCategories > 0
	if opts.RandomizeCategories != nil {
		randomize = *opts.RandomizeCategories && p.RandomCategories > 0
	}
	if randomize {
		allowed := drawCategories(opts.Rand, p.RandomCategories)
		kept := candidates[:0]
		for _, m := range candidates {
			if allowed[m.Category] {
				kept = append(kept, m)
			}
		}
		candidates = kept
	}

	trend := TrendScores(catalogLogs(opts.Logs, menus))
	ranked := make([]scored, 0, len(candidates))
	for _, m := range candidates {
		mt := Measure(m, trend)
		ranked = append(ranked, scored{menu: m, metrics: mt, composite: mt.weighted(p.Weights)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		for _, k := range p.SortBy {
			va, vb := a.metrics.get(k.Metric), b.metrics.get(k.Metric)
			if va == vb {
				continue
			}
			if k.Desc {
				return va > vb
			}
			return va < vb
		}
		return a.composite > b.composite
	})

	out := make([]food.Menu, len(ranked))
	for i, s := range ranked {
		out[i] = s.menu
	}
	return out
}

func filter(p Preset, menus []food.Menu) []food.Menu {
	excludeCat := toSet(p.ExcludeCategories)
	includeCook := toSet(p.IncludeCooking)
	excludeCook := toSet(p.ExcludeCooking)

	out := make([]food.Menu, 0, len(menus))
	for _, m := range menus {
		if excludeCat[m.Category] {
			continue
		}
		if len(includeCook) > 0 && !includeCook[m.CookingMethod] {
			continue
		}
		if excludeCook[m.CookingMethod] {
			continue
		}
		if p.MinHealthScore > 0 && m.Score() < p.MinHealthScore {
			continue
		}
		if p.MinCalories > 0 && deref(m.Calories) < p.MinCalories {
			continue
		}
		out = append(out, m)
	}
	return out
}

// drawCategories picks n distinct categories uniformly from food.Categories.
func drawCategories(r Rand, n int) map[string]bool {
	pool := make([]string, len(food.Categories))
	copy(pool, food.Categories)
	if n > len(pool) {
		n = len(pool)
	}
	picked := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		picked[pool[i]] = true
	}
	return picked
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}
