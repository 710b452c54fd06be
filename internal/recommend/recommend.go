package recommend

import (
	"sort"
	"time"

	"lg/canteen-go-api/internal/food"
)

const (
	DefaultWindowDays = 7
	DefaultLimit      = 9

	repeatPenalty    = 5.0
	maxRepeatPenalty = 15.0
)

// Options tunes Recommend. Zero values take the defaults; Now defaults to
// the current time.
type Options struct {
	WindowDays int
	Limit      int
	Now        time.Time
}

func (o Options) withDefaults() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Ranked is a menu with its personalized score and the repetition penalty
// already subtracted from it.
type Ranked struct {
	Menu    food.Menu `json:"menu"`
	Score   float64   `json:"score"`
	Penalty float64   `json:"penalty"`
}

// windowStart returns local midnight windowDays before now.
func windowStart(now time.Time, windowDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-windowDays, 0, 0, 0, 0, now.Location())
}

// Rank scores every catalog menu for the user whose logs are given. Only logs
// inside the trailing window count, both for the profile and for the
// repetition penalty (5 per prior occurrence, at most 15). Results are sorted
// by adjusted score, highest first, and not truncated.
func Rank(menus []food.Menu, logs []food.Log, opts Options) []Ranked {
	if len(menus) == 0 || len(logs) == 0 {
		return []Ranked{}
	}
	opts = opts.withDefaults()

	cutoff := windowStart(opts.Now, opts.WindowDays)
	var recent []food.Log
	occurrences := make(map[string]int)
	for _, l := range logs {
		if l.Timestamp.Before(cutoff) {
			continue
		}
		recent = append(recent, l)
		occurrences[l.MenuID]++
	}

	profile := BuildProfile(food.Resolve(recent, food.Index(menus)))

	ranked := make([]Ranked, 0, len(menus))
	for _, m := range menus {
		penalty := repeatPenalty * float64(occurrences[m.ID])
		if penalty > maxRepeatPenalty {
			penalty = maxRepeatPenalty
		}
		ranked = append(ranked, Ranked{
			Menu:    m,
			Score:   ScoreForUser(m, profile) - penalty,
			Penalty: penalty,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Recommend returns the top Limit menus from Rank.
func Recommend(menus []food.Menu, logs []food.Log, opts Options) []food.Menu {
	opts = opts.withDefaults()
	ranked := Rank(menus, logs, opts)
	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	out := make([]food.Menu, len(ranked))
	for i, r := range ranked {
		out[i] = r.Menu
	}
	return out
}

// PopularItem is a menu with its total logged quantity.
type PopularItem struct {
	Menu     food.Menu `json:"menu"`
	Quantity int       `json:"quantity"`
}

// PopularWithCounts ranks logged menus by total quantity, highest first. Logs
// referencing menus missing from the catalog are ignored. Ties keep catalog
// order. A non-positive limit means DefaultLimit.
func PopularWithCounts(menus []food.Menu, logs []food.Log, limit int) []PopularItem {
	if limit <= 0 {
		limit = DefaultLimit
	}
	totals := make(map[string]int)
	for _, l := range logs {
		totals[l.MenuID] += l.Qty()
	}

	items := make([]PopularItem, 0, len(totals))
	seen := make(map[string]bool, len(menus))
	for _, m := range menus {
		q, ok := totals[m.ID]
		if !ok || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		items = append(items, PopularItem{Menu: m, Quantity: q})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Popular returns the menus of PopularWithCounts.
func Popular(menus []food.Menu, logs []food.Log, limit int) []food.Menu {
	items := PopularWithCounts(menus, logs, limit)
	out := make([]food.Menu, len(items))
	for i, it := range items {
		out[i] = it.Menu
	}
	return out
}

// Healthiest orders the catalog by health score, highest first, for the
// healthiness board. Ties keep catalog order.
func Healthiest(menus []food.Menu, limit int) []food.Menu {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]food.Menu, len(menus))
	copy(out, menus)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
