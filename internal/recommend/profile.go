// Package recommend builds per-user consumption profiles from meal logs and
// ranks the menu catalog into personalized and popularity lists.
package recommend

import (
	"sort"

	"lg/canteen-go-api/internal/food"
)

// Profile is a quantity-weighted summary of what a user has eaten.
type Profile struct {
	CookingCounts  map[string]int `json:"cooking_counts"`
	TasteCounts    map[string]int `json:"taste_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
	// Total is the summed quantity of all resolved logs.
	Total int `json:"total"`
	// VegetableRatio is the share of Total from menus listing a vegetable.
	VegetableRatio float64 `json:"vegetable_ratio"`
}

// BuildProfile tallies cooking methods, tastes and categories weighted by
// each log's quantity. Entries without a resolved menu are skipped.
func BuildProfile(entries []food.Entry) Profile {
	p := Profile{
		CookingCounts:  make(map[string]int),
		TasteCounts:    make(map[string]int),
		CategoryCounts: make(map[string]int),
	}
	vegQty := 0
	for _, e := range entries {
		if e.Menu == nil {
			continue
		}
		q := e.Log.Qty()
		p.Total += q
		p.CookingCounts[e.Menu.CookingMethod] += q
		p.CategoryCounts[e.Menu.Category] += q
		for _, t := range e.Menu.Tastes {
			p.TasteCounts[t] += q
		}
		if len(e.Menu.Vegetables) > 0 {
			vegQty += q
		}
	}
	if p.Total > 0 {
		p.VegetableRatio = float64(vegQty) / float64(p.Total)
	}
	return p
}

// FriedRatio is the share of logged quantity that was fried.
func (p Profile) FriedRatio() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.CookingCounts[food.CookingFry]) / float64(p.Total)
}

// DominantTaste returns the most logged taste when it is present in more than
// half of the logged quantity. Menus carry several tastes, so more than one
// can pass half; ties on count go to the lexically smallest taste.
func (p Profile) DominantTaste() (string, bool) {
	if p.Total <= 0 {
		return "", false
	}
	tastes := make([]string, 0, len(p.TasteCounts))
	for t := range p.TasteCounts {
		tastes = append(tastes, t)
	}
	sort.Strings(tastes)

	best, bestN := "", 0
	for _, t := range tastes {
		if n := p.TasteCounts[t]; n > bestN {
			best, bestN = t, n
		}
	}
	if float64(bestN)/float64(p.Total) <= 0.5 {
		return "", false
	}
	return best, true
}

const (
	defaultBaseScore  = 50
	friedHeavyRatio   = 0.4
	lowVegetableRatio = 0.3
)

// ScoreForUser re-scores a menu against a profile, starting from the cached
// health score (50 when absent). The result is clamped to [0,100]. An empty
// profile only earns the nutrition bonuses.
func ScoreForUser(m food.Menu, p Profile) float64 {
	score := float64(defaultBaseScore)
	if m.HealthScore != nil {
		score = float64(*m.HealthScore)
	}

	if p.Total > 0 {
		if p.FriedRatio() > friedHeavyRatio {
			switch m.CookingMethod {
			case food.CookingBoil, food.CookingSteam:
				score += 12
			case food.CookingFry:
				score -= 10
			}
		}
		if p.VegetableRatio < lowVegetableRatio && len(m.Vegetables) > 0 {
			score += 10
		}
		if dom, ok := p.DominantTaste(); ok && !m.HasTaste(dom) {
			score += 5
		}
	}

	if m.HasNutrition() {
		if m.SodiumMg != nil && *m.SodiumMg < 600 {
			score += 2
		}
		if m.SugarG != nil && *m.SugarG < 10 {
			score += 2
		}
		if m.FatG != nil && *m.FatG < 15 {
			score += 1
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
