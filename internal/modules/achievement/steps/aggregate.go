package steps

import (
	"github.com/beyzakarasahann/AcuRate-sub001/internal/normalization"
)

type Options struct {
	Resolve ResolveOptions `json:"resolve" yaml:"resolve"`
	// TopN is how many strengths to rank; zero falls back to DefaultTopN.
	TopN    int `json:"top_n" yaml:"top_n"`
	BaseHue int `json:"base_hue" yaml:"base_hue"`
	HueStep int `json:"hue_step" yaml:"hue_step"`
}

func DefaultOptions() Options {
	return Options{
		Resolve: ResolveOptions{ExcellentFactor: DefaultExcellentFactor},
		TopN:    DefaultTopN,
		BaseHue: DefaultBaseHue,
		HueStep: DefaultHueStep,
	}
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.BaseHue == 0 && o.HueStep == 0 {
		o.BaseHue, o.HueStep = DefaultBaseHue, DefaultHueStep
	}
	return o
}

// CourseScore is one student's weighted percentage in one course. Score is
// nil when no graded, weighted assessment exists yet ("no score", not 0%).
type CourseScore struct {
	StudentID  int        `json:"student_id"`
	CourseID   int        `json:"course_id"`
	CourseCode string     `json:"course_code,omitempty"`
	Score      *float64   `json:"score,omitempty"`
	Stats      ScoreStats `json:"stats"`
}

// SkipCounts reports records dropped because a reference could not be
// normalized. Skips are expected, recoverable conditions; they are surfaced
// for observability, never raised.
type SkipCounts struct {
	Assessments  int `json:"assessments"`
	Grades       int `json:"grades"`
	Enrollments  int `json:"enrollments"`
	Achievements int `json:"achievements"`
	OutcomeRefs  int `json:"outcome_refs"`
}

type Result struct {
	Resolved           []ResolvedOutcome `json:"resolved"`
	OverallAchievement float64           `json:"overall_achievement"`
	CourseScores       []CourseScore     `json:"course_scores"`
	Matrix             MatrixResult      `json:"matrix"`
	Top                []RankedOutcome   `json:"top"`
	Rest               []ResolvedOutcome `json:"rest"`
	Skipped            SkipCounts        `json:"skipped"`
}

// Aggregate runs the whole pipeline over one snapshot: normalize and dedupe,
// score each enrollment's course, resolve outcome achievement, build the
// course↔outcome matrix, and rank strengths. Pure and deterministic: the same
// snapshot always yields the same result, including ordering and hues.
func Aggregate(snap Snapshot, opts Options) *Result {
	opts = opts.withDefaults()
	result := &Result{}

	courses := normalization.DedupeBy(snap.Courses,
		func(c CourseInput) (int, bool) { return c.ID, c.ID != 0 },
		func(c CourseInput) string { return c.Name },
	)
	index := newCourseIndex(courses, snap.Enrollments)

	enrollments := dedupeEnrollments(snap.Enrollments, index, &result.Skipped)

	assessmentsByCourse := make(map[int][]AssessmentInput)
	linkedOutcomes := make(map[int]bool)
	for _, a := range snap.Assessments {
		courseID, ok := index.resolve(a.Course)
		if !ok {
			result.Skipped.Assessments++
			continue
		}
		assessmentsByCourse[courseID] = append(assessmentsByCourse[courseID], a)
		for _, ref := range a.RelatedOutcomes {
			if outcomeID, ok := ref.ID(); ok {
				linkedOutcomes[outcomeID] = true
			} else {
				result.Skipped.OutcomeRefs++
			}
		}
	}

	type gradeKey struct{ assessmentID, studentID int }
	gradeByKey := make(map[gradeKey]float64, len(snap.Grades))
	for _, g := range snap.Grades {
		assessmentID, okA := g.Assessment.ID()
		studentID, okS := g.Student.ID()
		if !okA || !okS {
			result.Skipped.Grades++
			continue
		}
		key := gradeKey{assessmentID, studentID}
		// At most one grade per (assessment, student); first row wins.
		if _, seen := gradeByKey[key]; seen {
			continue
		}
		gradeByKey[key] = g.Score
	}

	for _, e := range enrollments {
		if !e.IsActive {
			continue
		}
		studentID, _ := e.Student.ID()
		courseID, _ := index.resolve(e.Course)
		assessments := assessmentsByCourse[courseID]

		items := make([]ScoreItem, 0, len(assessments))
		for _, a := range assessments {
			item := ScoreItem{MaxScore: a.MaxScore, Weight: a.Weight}
			if score, ok := gradeByKey[gradeKey{a.ID, studentID}]; ok {
				item.Score = &score
			}
			items = append(items, item)
		}
		score, stats := WeightedScore(items)
		result.CourseScores = append(result.CourseScores, CourseScore{
			StudentID:  studentID,
			CourseID:   courseID,
			CourseCode: index.codeFor(courseID, e.Course),
			Score:      score,
			Stats:      stats,
		})
	}

	resolveResult := Resolve(snap.Outcomes, snap.Achievements, linkedOutcomes, opts.Resolve)
	result.Resolved = resolveResult.Outcomes
	result.OverallAchievement = resolveResult.OverallAchievement
	result.Skipped.Achievements = resolveResult.SkippedAchievements

	result.Matrix = BuildMatrix(courses, snap.Assessments, snap.Enrollments, snap.Outcomes)

	top, rest := TopN(result.Resolved, opts.TopN)
	result.Top = Rank(top, opts.BaseHue, opts.HueStep)
	result.Rest = rest

	return result
}

// dedupeEnrollments collapses duplicate enrollment rows for the same
// (student, course) pair, where the course may appear as a bare ID, an
// embedded object, or only a name. First occurrence wins.
func dedupeEnrollments(enrollments []EnrollmentInput, index *courseIndex, skipped *SkipCounts) []EnrollmentInput {
	type idKey struct{ studentID, courseID int }
	type nameKey struct {
		studentID int
		course    string
	}
	seenByID := make(map[idKey]struct{})
	seenByName := make(map[nameKey]struct{})

	out := make([]EnrollmentInput, 0, len(enrollments))
	for _, e := range enrollments {
		studentID, ok := e.Student.ID()
		if !ok {
			skipped.Enrollments++
			continue
		}

		courseID, hasID := index.resolve(e.Course)
		courseName := normalization.NormalizeName(e.Course.Name)
		if courseName == "" {
			courseName = normalization.NormalizeName(e.Course.Code)
		}
		if !hasID && courseName == "" {
			skipped.Enrollments++
			continue
		}
		if hasID && courseName == "" {
			if c, known := index.byID[courseID]; known {
				courseName = normalization.NormalizeName(c.Name)
			}
		}

		dup := false
		if hasID {
			if _, seen := seenByID[idKey{studentID, courseID}]; seen {
				dup = true
			}
		}
		if !dup && courseName != "" {
			if _, seen := seenByName[nameKey{studentID, courseName}]; seen {
				dup = true
			}
		}
		if hasID {
			seenByID[idKey{studentID, courseID}] = struct{}{}
		}
		if courseName != "" {
			seenByName[nameKey{studentID, courseName}] = struct{}{}
		}
		if dup {
			continue
		}
		out = append(out, e)
	}
	return out
}
