package steps

import (
	"math"
	"testing"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/normalization"
)

func outcomeDef(id int, code string, target float64, active bool) OutcomeInput {
	return OutcomeInput{
		ID:               id,
		Code:             code,
		Kind:             "po",
		TargetPercentage: target,
		IsActive:         active,
		Department:       normalization.RefFromID(1),
	}
}

func achievement(outcomeID int, pct *float64) AchievementInput {
	return AchievementInput{Outcome: normalization.RefFromID(outcomeID), CurrentPercentage: pct}
}

func TestResolveStatusBoundaries(t *testing.T) {
	defs := []OutcomeInput{
		outcomeDef(1, "PO1", 70, true),
		outcomeDef(2, "PO2", 70, true),
		outcomeDef(3, "PO3", 70, true),
	}
	achievements := []AchievementInput{
		achievement(1, ptr(70)), // exactly target -> Achieved
		achievement(2, ptr(70 * 1.1)), // exactly target*1.1 -> Excellent
		achievement(3, ptr(69)), // just under -> Needs Attention
	}
	res := Resolve(defs, achievements, nil, ResolveOptions{})
	want := map[string]string{"PO1": StatusAchieved, "PO2": StatusExcellent, "PO3": StatusNeedsAttention}
	for _, r := range res.Outcomes {
		if r.Status != want[r.Outcome.Code] {
			t.Fatalf("%s: status=%q want %q (current=%v)", r.Outcome.Code, r.Status, want[r.Outcome.Code], r.Current)
		}
	}
}

func TestResolveMissingRecordIsNoData(t *testing.T) {
	defs := []OutcomeInput{outcomeDef(1, "PO1", 70, true)}
	res := Resolve(defs, nil, nil, ResolveOptions{})
	if len(res.Outcomes) != 1 {
		t.Fatalf("outcome with no scope data must still be emitted, got %d", len(res.Outcomes))
	}
	r := res.Outcomes[0]
	if r.HasData || r.Status != StatusNoData || r.Current != 0 {
		t.Fatalf("got %+v, want No Data with current 0", r)
	}
	if res.OverallAchievement != 0 {
		t.Fatalf("overall=%v want 0 (never NaN)", res.OverallAchievement)
	}
}

func TestResolveOverallExcludesZeroAndAbsent(t *testing.T) {
	defs := []OutcomeInput{
		outcomeDef(1, "PO1", 70, true),
		outcomeDef(2, "PO2", 70, true),
	}
	achievements := []AchievementInput{
		achievement(1, ptr(0)), // measured exactly zero -> "no data yet"
		achievement(2, ptr(80)),
	}
	res := Resolve(defs, achievements, nil, ResolveOptions{})
	if math.Abs(res.OverallAchievement-80) > 1e-9 {
		t.Fatalf("overall=%v want 80, not 40", res.OverallAchievement)
	}
	if res.Outcomes[0].HasData {
		t.Fatal("zero percentage must not count as data")
	}
}

func TestResolveNilPercentageIsNoData(t *testing.T) {
	defs := []OutcomeInput{outcomeDef(1, "PO1", 70, true)}
	res := Resolve(defs, []AchievementInput{achievement(1, nil)}, nil, ResolveOptions{})
	if res.Outcomes[0].HasData || res.Outcomes[0].Status != StatusNoData {
		t.Fatalf("got %+v", res.Outcomes[0])
	}
}

func TestResolveSecondaryCodeKeyOnlyOnIDMiss(t *testing.T) {
	defs := []OutcomeInput{
		outcomeDef(1, "PO1", 70, true),
		outcomeDef(2, "PO2", 70, true),
	}
	achievements := []AchievementInput{
		achievement(1, ptr(90)),
		// Carries PO1's code but no resolvable ID; must not overwrite the
		// ID-based match for PO1, and must still serve PO2 by its own code.
		{OutcomeCode: "po1", CurrentPercentage: ptr(10)},
		{OutcomeCode: "PO2", CurrentPercentage: ptr(75)},
	}
	res := Resolve(defs, achievements, nil, ResolveOptions{})
	byCode := map[string]ResolvedOutcome{}
	for _, r := range res.Outcomes {
		byCode[r.Outcome.Code] = r
	}
	if byCode["PO1"].Current != 90 {
		t.Fatalf("PO1 current=%v want 90 (ID match wins)", byCode["PO1"].Current)
	}
	if byCode["PO2"].Current != 75 {
		t.Fatalf("PO2 current=%v want 75 (code fallback)", byCode["PO2"].Current)
	}
}

func TestResolveMultipleRecordsAverageValidOnly(t *testing.T) {
	defs := []OutcomeInput{outcomeDef(1, "PO1", 70, true)}
	achievements := []AchievementInput{
		achievement(1, ptr(60)),
		achievement(1, ptr(80)),
		achievement(1, ptr(0)),
		achievement(1, nil),
	}
	res := Resolve(defs, achievements, nil, ResolveOptions{})
	if math.Abs(res.Outcomes[0].Current-70) > 1e-9 {
		t.Fatalf("current=%v want 70 (zero/absent rows excluded)", res.Outcomes[0].Current)
	}
}

func TestResolveActiveSubsetFallback(t *testing.T) {
	defs := []OutcomeInput{
		outcomeDef(1, "PO1", 70, true),
		outcomeDef(2, "PO2", 70, false),
	}
	res := Resolve(defs, nil, nil, ResolveOptions{})
	if len(res.Outcomes) != 1 || res.Outcomes[0].Outcome.Code != "PO1" {
		t.Fatalf("inactive outcome shown despite an active sibling: %+v", res.Outcomes)
	}

	allInactive := []OutcomeInput{
		outcomeDef(1, "PO1", 70, false),
		outcomeDef(2, "PO2", 70, false),
	}
	res = Resolve(allInactive, nil, nil, ResolveOptions{})
	if len(res.Outcomes) != 2 {
		t.Fatalf("all-inactive scope must fall back to showing everything, got %d", len(res.Outcomes))
	}
}

func TestResolveCountLinkedAssessments(t *testing.T) {
	defs := []OutcomeInput{outcomeDef(1, "PO1", 70, true)}
	linked := map[int]bool{1: true}

	res := Resolve(defs, nil, linked, ResolveOptions{})
	if res.Outcomes[0].HasData {
		t.Fatal("linked assessments must not count as data by default")
	}

	res = Resolve(defs, nil, linked, ResolveOptions{CountLinkedAssessments: true})
	r := res.Outcomes[0]
	if !r.HasData {
		t.Fatal("with the flag on, a linked assessment counts as data")
	}
	if r.Status != StatusNeedsAttention {
		t.Fatalf("status=%q want %q (has data, current 0)", r.Status, StatusNeedsAttention)
	}
}

func TestResolveSkipsUnresolvableAchievements(t *testing.T) {
	defs := []OutcomeInput{outcomeDef(1, "PO1", 70, true)}
	achievements := []AchievementInput{
		{CurrentPercentage: ptr(50)}, // no outcome ref, no code
		achievement(1, ptr(80)),
	}
	res := Resolve(defs, achievements, nil, ResolveOptions{})
	if res.SkippedAchievements != 1 {
		t.Fatalf("skipped=%d want 1", res.SkippedAchievements)
	}
	if res.Outcomes[0].Current != 80 {
		t.Fatalf("current=%v want 80", res.Outcomes[0].Current)
	}
}
