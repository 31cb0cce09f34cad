package steps

import (
	"sort"
)

// Default hue parameters for strength visualizations. Fixed constants so two
// runs over the same input color identically.
const (
	DefaultBaseHue = 210
	DefaultHueStep = 47
	DefaultTopN    = 5
)

type RankedOutcome struct {
	ResolvedOutcome
	Rank int `json:"rank"`
	Hue  int `json:"hue"`
}

// TopN sorts resolved outcomes by current achievement descending, ties broken
// by outcome code ascending, and partitions into the first n ("strengths")
// and the rest. Inputs are not mutated.
func TopN(resolved []ResolvedOutcome, n int) (top, rest []ResolvedOutcome) {
	sorted := make([]ResolvedOutcome, len(resolved))
	copy(sorted, resolved)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Current != sorted[j].Current {
			return sorted[i].Current > sorted[j].Current
		}
		return sorted[i].Outcome.Code < sorted[j].Outcome.Code
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], sorted[n:]
}

// Rank pairs each top outcome with its rank and a deterministic hue:
// (baseHue + rank*step) mod 360.
func Rank(top []ResolvedOutcome, baseHue, hueStep int) []RankedOutcome {
	hues := AssignHues(len(top), baseHue, hueStep)
	out := make([]RankedOutcome, len(top))
	for i, r := range top {
		out[i] = RankedOutcome{ResolvedOutcome: r, Rank: i + 1, Hue: hues[i]}
	}
	return out
}

func AssignHues(count, baseHue, step int) []int {
	hues := make([]int, count)
	for i := range hues {
		h := (baseHue + i*step) % 360
		if h < 0 {
			h += 360
		}
		hues[i] = h
	}
	return hues
}
