package food

import "strings"

const baseHealthScore = 70

// healthyProteins are matched as substrings of each protein ingredient.
var healthyProteins = []string{"fish", "tofu"}

// HealthScore rates a menu item 0-100 from an additive rule table. Absent
// nutrition facts neither penalize nor reward.
func HealthScore(m Menu) int {
	score := baseHealthScore

	if m.CookingMethod == CookingFry {
		score -= 20
	}
	if m.Category == CategoryDessert {
		score -= 15
	}
	if m.SugarG != nil && *m.SugarG > 20 {
		score -= 10
	}
	if m.SodiumMg != nil && *m.SodiumMg > 1200 {
		score -= 10
	}
	if len(m.Vegetables) > 0 {
		score += 5
	}
	if hasHealthyProtein(m.Proteins) {
		score += 5
	}

	return clamp(score, 0, 100)
}

func hasHealthyProtein(proteins []string) bool {
	for _, p := range proteins {
		for _, hp := range healthyProteins {
			if strings.Contains(p, hp) {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Label is a display string in English and Thai.
type Label struct {
	EN string `json:"en"`
	TH string `json:"th"`
}

type scoreBand struct {
	Min   int
	Color string
	Label Label
}

// scoreBands is ordered from the highest threshold down.
var scoreBands = []scoreBand{
	{Min: 80, Color: "text-green-600", Label: Label{EN: "Excellent", TH: "ดีมาก"}},
	{Min: 60, Color: "text-lime-600", Label: Label{EN: "Good", TH: "ดี"}},
	{Min: 40, Color: "text-amber-600", Label: Label{EN: "Fair", TH: "พอใช้"}},
	{Min: 0, Color: "text-red-600", Label: Label{EN: "Poor", TH: "ควรระวัง"}},
}

func bandFor(score int) scoreBand {
	for _, b := range scoreBands {
		if score >= b.Min {
			return b
		}
	}
	return scoreBands[len(scoreBands)-1]
}

// ScoreColor returns the CSS color class for a health score.
func ScoreColor(score int) string {
	return bandFor(score).Color
}

// ScoreLabel returns the display label for a health score.
func ScoreLabel(score int) Label {
	return bandFor(score).Label
}
