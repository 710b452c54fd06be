package badge

import (
	"math"
	"sort"
	"strings"
	"time"

	"lg/canteen-go-api/internal/food"
)

// Badge is a catalog definition paired with the user's state for it.
type Badge struct {
	Definition
	Earned   bool              `json:"is_earned"`
	EarnedAt *food.EpochMillis `json:"earned_at"`
	Current  float64           `json:"current"`
	Progress int               `json:"progress"`
}

type evaluation struct {
	stats Stats
	chron []food.Entry
	days  []time.Time
	now   time.Time
}

func (r *result) ratioOf(target int) float64 {
	if target <= 0 {
		return 0
	}
	return r.current / float64(target)
}

// CheckBadges evaluates every catalog definition and returns one badge per
// definition in catalog order.
func CheckBadges(stats Stats, entries []food.Entry, now time.Time) []Badge {
	chron := make([]food.Entry, len(entries))
	copy(chron, entries)
	sort.SliceStable(chron, func(i, j int) bool {
		return chron[i].Log.Timestamp.Before(chron[j].Log.Timestamp.Time)
	})
	ev := &evaluation{
		stats: stats,
		chron: chron,
		days:  loggedDays(entries, now.Location()),
		now:   now,
	}

	out := make([]Badge, 0, len(catalog))
	for _, def := range catalog {
		r := def.check(ev, def.Target)
		b := Badge{Definition: def, Earned: r.earned, Current: r.current}
		if r.earned {
			b.Progress = 100
			if !r.earnedAt.IsZero() {
				b.EarnedAt = &food.EpochMillis{Time: r.earnedAt}
			}
		} else {
			b.Progress = progressPercent(r.ratioOf(def.Target))
		}
		out = append(out, b)
	}
	return out
}

func progressPercent(ratio float64) int {
	p := int(math.Floor(ratio * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func checkStreak(ev *evaluation, target int) result {
	r := result{current: float64(ev.stats.LongestStreak)}
	if ev.stats.LongestStreak >= target {
		r.earned = true
		if day, ok := streakReachedOn(ev.days, target); ok {
			r.earnedAt = day
		}
	}
	return r
}

// countLogs counts logs in chronological order, optionally only those whose
// resolved menu matches. The badge is earned at the log reaching the target.
func countLogs(match func(m *food.Menu) bool) func(ev *evaluation, target int) result {
	return func(ev *evaluation, target int) result {
		var r result
		for _, e := range ev.chron {
			if match != nil && (e.Menu == nil || !match(e.Menu)) {
				continue
			}
			r.current++
			if int(r.current) == target {
				r.earned = true
				r.earnedAt = e.Log.Timestamp.Time
			}
		}
		return r
	}
}

func countPublic(ev *evaluation, target int) result {
	var r result
	for _, e := range ev.chron {
		if !e.Log.IsPublic() {
			continue
		}
		r.current++
		if int(r.current) == target {
			r.earned = true
			r.earnedAt = e.Log.Timestamp.Time
		}
	}
	return r
}

// checkAverage requires at least minMeals resolved meals in the trailing
// window (0 means all time) with an average score of at least target.
// Progress is the weaker of the meal count and the average.
func checkAverage(windowDays, minMeals int) func(ev *evaluation, target int) result {
	return func(ev *evaluation, target int) result {
		var since time.Time
		if windowDays > 0 {
			since = ev.now.AddDate(0, 0, -windowDays)
		}
		var sum, n int
		var last time.Time
		for _, e := range ev.chron {
			if e.Menu == nil || e.Log.Timestamp.Before(since) {
				continue
			}
			sum += e.Menu.Score()
			n++
			last = e.Log.Timestamp.Time
		}
		var r result
		if n == 0 {
			return r
		}
		avg := float64(sum) / float64(n)
		r.current = math.Round(avg*10) / 10
		if n >= minMeals && avg >= float64(target) {
			r.earned = true
			r.earnedAt = last
			return r
		}
		// Scale the weaker factor back onto the score target.
		weakest := math.Min(float64(n)/float64(minMeals), avg/float64(target))
		r.current = weakest * float64(target)
		return r
	}
}

func checkEarlyAdopter(ev *evaluation, _ int) result {
	var r result
	if len(ev.chron) > 0 && ev.chron[0].Log.Timestamp.Before(earlyAdopterCutoff) {
		r.current = 1
		r.earned = true
		r.earnedAt = ev.chron[0].Log.Timestamp.Time
	}
	return r
}

func checkExplorer(ev *evaluation, target int) result {
	var r result
	seen := make(map[string]bool)
	for _, e := range ev.chron {
		if seen[e.Log.MenuID] {
			continue
		}
		seen[e.Log.MenuID] = true
		r.current++
		if int(r.current) == target {
			r.earned = true
			r.earnedAt = e.Log.Timestamp.Time
		}
	}
	return r
}

// SortBadges orders earned badges first, then by rarity (legendary first),
// then most recently earned. The input is not modified.
func SortBadges(badges []Badge) []Badge {
	out := make([]Badge, len(badges))
	copy(out, badges)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Earned != b.Earned {
			return a.Earned
		}
		if ra, rb := rarityRank[a.Rarity], rarityRank[b.Rarity]; ra != rb {
			return ra > rb
		}
		switch {
		case a.EarnedAt == nil || b.EarnedAt == nil:
			return a.EarnedAt != nil && b.EarnedAt == nil
		default:
			return a.EarnedAt.After(b.EarnedAt.Time)
		}
	})
	return out
}

// Categories groups badges for the achievements page.
type Categories struct {
	Streaks   []Badge `json:"streaks"`
	Meals     []Badge `json:"meals"`
	Health    []Badge `json:"health"`
	Nutrition []Badge `json:"nutrition"`
	Social    []Badge `json:"social"`
	Special   []Badge `json:"special"`
}

func containsAny(id string, parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(id, p) {
			return true
		}
	}
	return false
}

// Categorize buckets badges by id. Each bucket is tested independently.
func Categorize(badges []Badge) Categories {
	c := Categories{
		Streaks:   []Badge{},
		Meals:     []Badge{},
		Health:    []Badge{},
		Nutrition: []Badge{},
		Social:    []Badge{},
		Special:   []Badge{},
	}
	for _, b := range badges {
		if containsAny(b.ID, "streak") {
			c.Streaks = append(c.Streaks, b)
		}
		if containsAny(b.ID, "meal") {
			c.Meals = append(c.Meals, b)
		}
		if containsAny(b.ID, "health") {
			c.Health = append(c.Health, b)
		}
		if containsAny(b.ID, "veggie", "protein", "balanced") {
			c.Nutrition = append(c.Nutrition, b)
		}
		if containsAny(b.ID, "share", "social") {
			c.Social = append(c.Social, b)
		}
		if containsAny(b.ID, "early", "explorer") {
			c.Special = append(c.Special, b)
		}
	}
	return c
}
