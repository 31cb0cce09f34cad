package steps

import (
	"testing"

	"pgregory.net/rapid"
)

// For any item set whose percentages lie in [0,100], a non-nil weighted score
// lies in [0,100] too.
func TestWeightedScoreBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) ScoreItem {
			item := ScoreItem{
				MaxScore: rapid.Float64Range(0, 200).Draw(t, "max"),
				Weight:   rapid.Float64Range(-10, 100).Draw(t, "weight"),
			}
			if rapid.Bool().Draw(t, "graded") && item.MaxScore > 0 {
				score := rapid.Float64Range(0, item.MaxScore).Draw(t, "score")
				item.Score = &score
			}
			return item
		}), 0, 24).Draw(t, "items")

		score, _ := WeightedScore(items)
		if score == nil {
			return
		}
		if *score < 0 || *score > 100+1e-9 {
			t.Fatalf("score %v out of [0,100]", *score)
		}
	})
}

// Adding ungraded items never changes the result.
func TestWeightedScoreIgnoresUngradedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		graded := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) ScoreItem {
			score := rapid.Float64Range(0, 100).Draw(t, "score")
			return ScoreItem{Score: &score, MaxScore: 100, Weight: rapid.Float64Range(0, 50).Draw(t, "weight")}
		}), 0, 12).Draw(t, "graded")

		padded := make([]ScoreItem, 0, len(graded)+3)
		padded = append(padded, graded...)
		for i := 0; i < rapid.IntRange(0, 3).Draw(t, "extra"); i++ {
			padded = append(padded, ScoreItem{MaxScore: 100, Weight: rapid.Float64Range(0, 50).Draw(t, "padweight")})
		}

		a, _ := WeightedScore(graded)
		b, _ := WeightedScore(padded)
		switch {
		case a == nil && b == nil:
		case a != nil && b != nil && *a == *b:
		default:
			t.Fatalf("ungraded padding changed result: %v vs %v", a, b)
		}
	})
}

// The resolver's overall average is never NaN and always within the range of
// its inputs.
func TestResolveOverallNeverNaN(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 10).Draw(t, "n")
		defs := make([]OutcomeInput, n)
		var achievements []AchievementInput
		for i := range defs {
			defs[i] = outcomeDef(i+1, "PO", 70, true)
			if rapid.Bool().Draw(t, "hasRow") {
				pct := rapid.Float64Range(0, 100).Draw(t, "pct")
				achievements = append(achievements, achievement(i+1, &pct))
			}
		}
		res := Resolve(defs, achievements, nil, ResolveOptions{})
		if res.OverallAchievement != res.OverallAchievement {
			t.Fatal("overall achievement is NaN")
		}
		if res.OverallAchievement < 0 || res.OverallAchievement > 100 {
			t.Fatalf("overall %v out of range", res.OverallAchievement)
		}
	})
}
