package steps

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestWeightedScoreTwoAssessments(t *testing.T) {
	// 0.6*80 + 0.4*60 = 72
	items := []ScoreItem{
		{Score: ptr(80), MaxScore: 100, Weight: 60},
		{Score: ptr(60), MaxScore: 100, Weight: 40},
	}
	score, stats := WeightedScore(items)
	if score == nil {
		t.Fatal("expected a score")
	}
	if math.Abs(*score-72) > 1e-9 {
		t.Fatalf("score=%v want 72", *score)
	}
	if stats.Counted != 2 {
		t.Fatalf("counted=%d want 2", stats.Counted)
	}
}

func TestWeightedScoreEmpty(t *testing.T) {
	if score, _ := WeightedScore(nil); score != nil {
		t.Fatalf("expected nil score, got %v", *score)
	}
}

func TestWeightedScoreZeroTotalWeight(t *testing.T) {
	items := []ScoreItem{
		{Score: ptr(50), MaxScore: 100, Weight: 0},
		{Score: ptr(90), MaxScore: 100, Weight: 0},
	}
	if score, _ := WeightedScore(items); score != nil {
		t.Fatalf("expected nil score on zero total weight, got %v", *score)
	}
}

func TestWeightedScoreIgnoresUngraded(t *testing.T) {
	graded := []ScoreItem{
		{Score: ptr(80), MaxScore: 100, Weight: 60},
		{Score: ptr(60), MaxScore: 100, Weight: 40},
	}
	withUngraded := append(append([]ScoreItem{}, graded...), ScoreItem{MaxScore: 100, Weight: 30})

	a, _ := WeightedScore(graded)
	b, stats := WeightedScore(withUngraded)
	if a == nil || b == nil {
		t.Fatal("expected scores")
	}
	if *a != *b {
		t.Fatalf("ungraded item changed the score: %v vs %v", *a, *b)
	}
	if stats.SkippedUngraded != 1 {
		t.Fatalf("skipped_ungraded=%d want 1", stats.SkippedUngraded)
	}
}

func TestWeightedScoreSingleItem(t *testing.T) {
	score, _ := WeightedScore([]ScoreItem{{Score: ptr(45), MaxScore: 50, Weight: 10}})
	if score == nil || math.Abs(*score-90) > 1e-9 {
		t.Fatalf("got %v want 90", score)
	}
}

func TestWeightedScoreClampsNegativeWeights(t *testing.T) {
	items := []ScoreItem{
		{Score: ptr(100), MaxScore: 100, Weight: -50},
		{Score: ptr(60), MaxScore: 100, Weight: 40},
	}
	score, stats := WeightedScore(items)
	if score == nil || math.Abs(*score-60) > 1e-9 {
		t.Fatalf("got %v want 60 (negative weight clamped out)", score)
	}
	if stats.NegativeWeights != 1 {
		t.Fatalf("negative_weights=%d want 1", stats.NegativeWeights)
	}
}

func TestWeightedScoreSkipsZeroMax(t *testing.T) {
	items := []ScoreItem{
		{Score: ptr(10), MaxScore: 0, Weight: 50},
		{Score: ptr(70), MaxScore: 100, Weight: 50},
	}
	score, stats := WeightedScore(items)
	if score == nil || math.Abs(*score-70) > 1e-9 {
		t.Fatalf("got %v want 70", score)
	}
	if stats.SkippedNoMax != 1 {
		t.Fatalf("skipped_no_max=%d want 1", stats.SkippedNoMax)
	}
}
