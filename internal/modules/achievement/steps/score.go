package steps

// ScoreItem is one assessment's contribution to a course score. A nil Score
// means the assessment is ungraded and must be skipped entirely; it does not
// contribute zero weight or zero percent.
type ScoreItem struct {
	Score    *float64 `json:"score,omitempty"`
	MaxScore float64  `json:"max_score"`
	Weight   float64  `json:"weight"`
}

// ScoreStats surfaces how many items a score computation skipped, so callers
// can report malformed input without the calculator ever failing.
type ScoreStats struct {
	Counted         int `json:"counted"`
	SkippedUngraded int `json:"skipped_ungraded"`
	SkippedNoMax    int `json:"skipped_no_max"`
	NegativeWeights int `json:"negative_weights"`
}

// WeightedScore combines graded items into a single percentage weighted by
// each item's course-local weight. The result is nil when no weight
// contributes, never a division by zero. Negative weights are clamped to 0
// and reported in the stats.
func WeightedScore(items []ScoreItem) (*float64, ScoreStats) {
	var stats ScoreStats
	var weightSum, weightedPctSum float64
	for _, item := range items {
		weight := item.Weight
		if weight < 0 {
			stats.NegativeWeights++
			weight = 0
		}
		if item.Score == nil {
			stats.SkippedUngraded++
			continue
		}
		if item.MaxScore <= 0 {
			stats.SkippedNoMax++
			continue
		}
		stats.Counted++
		pct := *item.Score / item.MaxScore * 100
		weightedPctSum += pct * weight
		weightSum += weight
	}
	if weightSum <= 0 {
		return nil, stats
	}
	result := weightedPctSum / weightSum
	return &result, stats
}
