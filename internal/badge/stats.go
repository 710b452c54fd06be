// Package badge aggregates a user's meal logs into summary statistics and
// evaluates the achievement badge catalog against them.
package badge

import (
	"math"
	"sort"
	"time"

	"lg/canteen-go-api/internal/food"
)

// HealthyScore is the health score at which a meal counts as healthy.
const HealthyScore = 70

// Stats is derived on every request and never stored.
type Stats struct {
	TotalLogs      int     `json:"total_logs"`
	AvgHealthScore float64 `json:"avg_health_score"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	TotalSpent     float64 `json:"total_spent"`
	HealthyMeals   int     `json:"healthy_meals"`
	VeggieMeals    int     `json:"veggie_meals"`
	ProteinMeals   int     `json:"protein_meals"`
	PublicLogs     int     `json:"public_logs"`
	PrivateLogs    int     `json:"private_logs"`
	ThisWeek       int     `json:"this_week"`
	ThisMonth      int     `json:"this_month"`
}

// ComputeStats summarizes entries as of now. Counts are per log; spend is
// price times quantity. Menu-derived counters skip entries whose menu could
// not be resolved. Calendar days are taken in now's location.
func ComputeStats(entries []food.Entry, now time.Time) Stats {
	var s Stats
	s.TotalLogs = len(entries)

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	var scoreSum, scored int
	for _, e := range entries {
		if e.Log.IsPublic() {
			s.PublicLogs++
		} else {
			s.PrivateLogs++
		}
		ts := e.Log.Timestamp.Time
		if !ts.Before(weekAgo) {
			s.ThisWeek++
		}
		if !ts.Before(monthAgo) {
			s.ThisMonth++
		}

		if e.Menu == nil {
			continue
		}
		score := e.Menu.Score()
		scoreSum += score
		scored++
		if score >= HealthyScore {
			s.HealthyMeals++
		}
		if len(e.Menu.Vegetables) > 0 {
			s.VeggieMeals++
		}
		if len(e.Menu.Proteins) > 0 {
			s.ProteinMeals++
		}
		if e.Menu.Price != nil {
			s.TotalSpent += *e.Menu.Price * float64(e.Log.Qty())
		}
	}
	if scored > 0 {
		s.AvgHealthScore = math.Round(float64(scoreSum)/float64(scored)*10) / 10
	}

	days := loggedDays(entries, now.Location())
	s.CurrentStreak = currentStreak(days, now)
	s.LongestStreak = longestStreak(days)
	return s
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// loggedDays returns the distinct local calendar days with at least one log,
// oldest first.
func loggedDays(entries []food.Entry, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, e := range entries {
		d := dayOf(e.Log.Timestamp.Time, loc)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// currentStreak counts consecutive logged days ending today. When today has
// no log yet the walk starts from yesterday instead.
func currentStreak(days []time.Time, now time.Time) int {
	set := make(map[time.Time]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	cursor := dayOf(now, now.Location())
	if !set[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	n := 0
	for set[cursor] {
		n++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return n
}

func longestStreak(days []time.Time) int {
	best, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// streakReachedOn returns the first day on which a run of n consecutive
// logged days was completed.
func streakReachedOn(days []time.Time, n int) (time.Time, bool) {
	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return d, true
		}
	}
	return time.Time{}, false
}
