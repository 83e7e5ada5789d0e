package core

import "math"

// CategoryStats is completion for one category.
type CategoryStats struct {
	Category  Category `json:"category"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
	Percent   int      `json:"percent"`
}

// TaskStats is completion across all of a user's tasks.
type TaskStats struct {
	Total      int             `json:"total"`
	Completed  int             `json:"completed"`
	Percent    int             `json:"percent"`
	ByCategory []CategoryStats `json:"byCategory"`
	Motivation Motivation      `json:"motivation"`
}

// Motivation is an encouragement band derived from the completion percent.
type Motivation string

const (
	MotivationPerfect   Motivation = "perfect"    // 100%
	MotivationGreat     Motivation = "great"      // 80% and above
	MotivationGood      Motivation = "good"       // 50% and above
	MotivationKeepGoing Motivation = "keep_going" // below 50%
)

// MotivationFor returns the band for a completion percent.
func MotivationFor(percent int) Motivation {
	switch {
	case percent >= 100:
		return MotivationPerfect
	case percent >= 80:
		return MotivationGreat
	case percent >= 50:
		return MotivationGood
	default:
		return MotivationKeepGoing
	}
}

// Percent returns completed/total as a rounded percentage, 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// ComputeStats tallies tasks overall and per category. Categories appear in
// display order and only when they have at least one task.
func ComputeStats(tasks []CustomTask) TaskStats {
	var stats TaskStats
	perCat := make(map[Category]*CategoryStats, len(Categories))

	for _, t := range tasks {
		cat := t.Category
		if !cat.Valid() {
			cat = DefaultCategory
		}
		cs, ok := perCat[cat]
		if !ok {
			cs = &CategoryStats{Category: cat}
			perCat[cat] = cs
		}
		cs.Total++
		stats.Total++
		if t.Completed {
			cs.Completed++
			stats.Completed++
		}
	}

	for _, cat := range Categories {
		if cs, ok := perCat[cat]; ok {
			cs.Percent = Percent(cs.Completed, cs.Total)
			stats.ByCategory = append(stats.ByCategory, *cs)
		}
	}
	stats.Percent = Percent(stats.Completed, stats.Total)
	stats.Motivation = MotivationFor(stats.Percent)
	return stats
}
