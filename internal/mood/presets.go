package mood

import (
	"slices"

	"lg/canteen-go-api/internal/food"
)

// Metric names one of the seven normalized per-menu metrics.
type Metric string

const (
	MetricCalorie Metric = "calorie"
	MetricProtein Metric = "protein"
	MetricSatiety Metric = "satiety"
	MetricHealth  Metric = "health"
	MetricSodium  Metric = "sodium"
	MetricSugar   Metric = "sugar"
	MetricTrend   Metric = "trend"
)

// SortKey orders by one metric. Desc means higher values come first.
type SortKey struct {
	Metric Metric `json:"metric"`
	Desc   bool   `json:"desc"`
}

// Preset is a named bundle of filters, weights and sort order. Zero-valued
// filters are inactive.
type Preset struct {
	ID                string     `json:"id"`
	Label             food.Label `json:"label"`
	Icon              string     `json:"icon"`
	ExcludeCategories []string   `json:"exclude_categories,omitempty"`
	IncludeCooking    []string   `json:"include_cooking,omitempty"`
	ExcludeCooking    []string   `json:"exclude_cooking,omitempty"`
	MinHealthScore    int        `json:"min_health_score,omitempty"`
	MinCalories       float64    `json:"min_calories,omitempty"`
	RandomCategories  int        `json:"random_categories,omitempty"`
	Weights           Metrics    `json:"weights"`
	SortBy            []SortKey  `json:"sort_by"`
}

var presets = []Preset{
	{
		ID:                "hungry",
		Label:             food.Label{EN: "Very hungry", TH: "หิวมาก"},
		Icon:              "🍛",
		ExcludeCategories: []string{food.CategoryDessert, food.CategorySnack},
		MinCalories:       500,
		Weights:           Metrics{Calorie: 0.3, Protein: 0.2, Satiety: 0.5},
		SortBy:            []SortKey{{MetricSatiety, true}, {MetricCalorie, true}},
	},
	{
		ID:             "clean",
		Label:          food.Label{EN: "Clean eating", TH: "กินคลีน"},
		Icon:           "🥗",
		ExcludeCooking: []string{food.CookingFry},
		MinHealthScore: 75,
		Weights:        Metrics{Health: 0.5, Protein: 0.1, Sodium: -0.2, Sugar: -0.2},
		SortBy:         []SortKey{{MetricHealth, true}, {MetricSodium, false}},
	},
	{
		ID:               "lazy",
		Label:            food.Label{EN: "Can't decide", TH: "ขี้เกียจเลือก"},
		Icon:             "🎲",
		RandomCategories: 2,
		Weights:          Metrics{Trend: 0.5, Health: 0.3, Satiety: 0.2},
		SortBy:           []SortKey{{MetricTrend, true}},
	},
	{
		ID:             "light",
		Label:          food.Label{EN: "Something light", TH: "ทานเบาๆ"},
		Icon:           "🍵",
		IncludeCooking: []string{food.CookingBoil, food.CookingSteam, food.CookingRaw},
		Weights:        Metrics{Health: 0.4, Calorie: -0.4, Sodium: -0.2},
		SortBy:         []SortKey{{MetricCalorie, false}},
	},
	{
		ID:      "trending",
		Label:   food.Label{EN: "What's popular", TH: "กำลังฮิต"},
		Icon:    "🔥",
		Weights: Metrics{Trend: 0.8, Health: 0.2},
		SortBy:  []SortKey{{MetricTrend, true}, {MetricHealth, true}},
	},
	{
		ID:      "treat",
		Label:   food.Label{EN: "Treat myself", TH: "ให้รางวัลตัวเอง"},
		Icon:    "🍰",
		Weights: Metrics{Sugar: 0.4, Calorie: 0.3, Trend: 0.3},
		SortBy:  []SortKey{{MetricSugar, true}},
	},
}

var presetByID = func() map[string]Preset {
	m := make(map[string]Preset, len(presets))
	for _, p := range presets {
		m[p.ID] = p
	}
	return m
}()

// clone copies the preset's slices so callers cannot edit the package table.
func (p Preset) clone() Preset {
	p.ExcludeCategories = slices.Clone(p.ExcludeCategories)
	p.IncludeCooking = slices.Clone(p.IncludeCooking)
	p.ExcludeCooking = slices.Clone(p.ExcludeCooking)
	p.SortBy = slices.Clone(p.SortBy)
	return p
}

// Presets returns copies of the mood presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p.clone()
	}
	return out
}

// Lookup returns a copy of the preset with the given id.
func Lookup(id string) (Preset, bool) {
	p, ok := presetByID[id]
	if !ok {
		return Preset{}, false
	}
	return p.clone(), true
}
