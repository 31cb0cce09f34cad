package steps

import (
	"gonum.org/v1/gonum/stat"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/normalization"
)

const (
	StatusNoData         = "No Data"
	StatusExcellent      = "Excellent"
	StatusAchieved       = "Achieved"
	StatusNeedsAttention = "Needs Attention"
)

// DefaultExcellentFactor marks an outcome "Excellent" at 110% of its target.
const DefaultExcellentFactor = 1.1

type ResolveOptions struct {
	// CountLinkedAssessments treats an outcome as having data whenever at
	// least one assessment contributes to it, even before any achievement row
	// exists ("has potential data"). Off by default: only measured values
	// count.
	CountLinkedAssessments bool `json:"count_linked_assessments" yaml:"count_linked_assessments"`

	// ExcellentFactor scales the target for the "Excellent" threshold.
	// Zero or negative falls back to DefaultExcellentFactor.
	ExcellentFactor float64 `json:"excellent_factor" yaml:"excellent_factor"`
}

type ResolvedOutcome struct {
	Outcome OutcomeInput `json:"outcome"`
	Current float64      `json:"current"`
	HasData bool         `json:"has_data"`
	Status  string       `json:"status"`
}

type ResolveResult struct {
	Outcomes []ResolvedOutcome `json:"outcomes"`
	// OverallAchievement is the mean of Current over outcomes with data;
	// 0 when nothing has data, never NaN.
	OverallAchievement  float64 `json:"overall_achievement"`
	SkippedAchievements int     `json:"skipped_achievements"`
}

// Resolve joins outcome definitions with achievement rows and classifies each
// outcome. linkedOutcomeIDs is the set of outcomes with at least one
// contributing assessment, consulted only when CountLinkedAssessments is on.
//
// An achievement value counts toward an outcome only when present and
// strictly positive: a missing or exactly-zero value means "no data yet",
// which is distinct from a measured low score. Outcomes whose scope has no
// rows at all still come back as "No Data" rather than being dropped.
func Resolve(outcomeDefs []OutcomeInput, achievements []AchievementInput, linkedOutcomeIDs map[int]bool, opts ResolveOptions) ResolveResult {
	factor := opts.ExcellentFactor
	if factor <= 0 {
		factor = DefaultExcellentFactor
	}

	byID := make(map[int][]*float64, len(achievements))
	byCode := make(map[string][]*float64)
	var skipped int
	for _, rec := range achievements {
		if id, ok := rec.Outcome.ID(); ok {
			byID[id] = append(byID[id], rec.CurrentPercentage)
			continue
		}
		code := normalization.NormalizeName(rec.OutcomeCode)
		if code == "" {
			code = normalization.NormalizeName(rec.Outcome.Code)
		}
		if code != "" {
			byCode[code] = append(byCode[code], rec.CurrentPercentage)
			continue
		}
		skipped++
	}

	visible := activeSubset(outcomeDefs)

	resolved := make([]ResolvedOutcome, 0, len(visible))
	for _, def := range visible {
		values := byID[def.ID]
		if len(values) == 0 {
			// Secondary key: never consulted when the ID join hit, so a code
			// collision cannot overwrite an ID-based match.
			values = byCode[normalization.NormalizeName(def.Code)]
		}

		var valid []float64
		for _, v := range values {
			if v != nil && *v > 0 {
				valid = append(valid, *v)
			}
		}

		current := 0.0
		if len(valid) > 0 {
			current = stat.Mean(valid, nil)
		}
		hasData := len(valid) > 0
		if !hasData && opts.CountLinkedAssessments && linkedOutcomeIDs[def.ID] {
			hasData = true
		}

		resolved = append(resolved, ResolvedOutcome{
			Outcome: def,
			Current: current,
			HasData: hasData,
			Status:  classify(current, def.TargetPercentage, hasData, factor),
		})
	}

	var withData []float64
	for _, r := range resolved {
		if r.HasData {
			withData = append(withData, r.Current)
		}
	}
	overall := 0.0
	if len(withData) > 0 {
		overall = stat.Mean(withData, nil)
	}

	return ResolveResult{
		Outcomes:            resolved,
		OverallAchievement:  overall,
		SkippedAchievements: skipped,
	}
}

// classify applies the fixed status order: missing data first, then the
// inclusive Excellent and Achieved boundaries.
func classify(current, target float64, hasData bool, excellentFactor float64) string {
	switch {
	case !hasData:
		return StatusNoData
	case current >= target*excellentFactor:
		return StatusExcellent
	case current >= target:
		return StatusAchieved
	default:
		return StatusNeedsAttention
	}
}

type scopeKey struct {
	kind     string
	scopeID  int
	hasScope bool
}

func scopeOf(def OutcomeInput) scopeKey {
	key := scopeKey{kind: def.Kind}
	if id, ok := def.Department.ID(); ok {
		key.scopeID, key.hasScope = id, true
	} else if id, ok := def.Course.ID(); ok {
		key.scopeID, key.hasScope = id, true
	}
	return key
}

// activeSubset hides inactive outcomes, but only in scopes that still have at
// least one active outcome; a scope with none active shows everything rather
// than an empty page.
func activeSubset(defs []OutcomeInput) []OutcomeInput {
	scopeHasActive := make(map[scopeKey]bool)
	for _, def := range defs {
		if def.IsActive {
			scopeHasActive[scopeOf(def)] = true
		}
	}
	out := make([]OutcomeInput, 0, len(defs))
	for _, def := range defs {
		if def.IsActive || !scopeHasActive[scopeOf(def)] {
			out = append(out, def)
		}
	}
	return out
}
