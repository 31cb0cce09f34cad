package steps

import (
	"sort"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/normalization"
)

type MatrixKey struct {
	CourseCode  string
	OutcomeCode string
}

type MatrixCell struct {
	CourseCode  string  `json:"course_code"`
	OutcomeCode string  `json:"outcome_code"`
	Weight      float64 `json:"weight"`
}

// MatrixResult is the dense display table between contributing courses and
// outcomes. Pairs without a link have no cell; absence means "no
// relationship", not zero weight.
type MatrixResult struct {
	CourseCodes  []string     `json:"course_codes"`
	OutcomeCodes []string     `json:"outcome_codes"`
	Cells        []MatrixCell `json:"cells"`
	// SkippedAssessments counts assessments whose course reference could not
	// be normalized to any known course.
	SkippedAssessments int `json:"skipped_assessments"`

	lookup map[MatrixKey]float64
}

// Weight reports the link weight for a (course, outcome) pair.
func (m MatrixResult) Weight(courseCode, outcomeCode string) (float64, bool) {
	w, ok := m.lookup[MatrixKey{CourseCode: courseCode, OutcomeCode: outcomeCode}]
	return w, ok
}

// BuildMatrix derives the course↔outcome weight matrix by following each
// assessment to its course and its related outcomes. When several assessments
// link the same pair with different weights the matrix keeps the maximum:
// summing would double-count a course that merely splits one outcome across
// assessments, and last-wins would depend on input order.
//
// Course codes come from the enrollment-derived lookup first (enrollment rows
// often embed the course object), falling back to the course's own code.
func BuildMatrix(courses []CourseInput, assessments []AssessmentInput, enrollments []EnrollmentInput, outcomeDefs []OutcomeInput) MatrixResult {
	index := newCourseIndex(courses, enrollments)

	outcomeCodeByID := make(map[int]string, len(outcomeDefs))
	for _, def := range outcomeDefs {
		if _, seen := outcomeCodeByID[def.ID]; !seen && def.Code != "" {
			outcomeCodeByID[def.ID] = def.Code
		}
	}

	result := MatrixResult{lookup: make(map[MatrixKey]float64)}
	courseSet := make(map[string]struct{})
	outcomeSet := make(map[string]struct{})

	for _, a := range assessments {
		courseID, ok := index.resolve(a.Course)
		if !ok {
			result.SkippedAssessments++
			continue
		}
		courseCode := index.codeFor(courseID, a.Course)
		if courseCode == "" {
			result.SkippedAssessments++
			continue
		}
		for _, ref := range a.RelatedOutcomes {
			outcomeID, ok := ref.ID()
			if !ok {
				continue
			}
			outcomeCode := outcomeCodeByID[outcomeID]
			if outcomeCode == "" {
				outcomeCode = ref.Code
			}
			if outcomeCode == "" {
				continue
			}
			key := MatrixKey{CourseCode: courseCode, OutcomeCode: outcomeCode}
			if w, seen := result.lookup[key]; !seen || a.Weight > w {
				result.lookup[key] = a.Weight
			}
			courseSet[courseCode] = struct{}{}
			outcomeSet[outcomeCode] = struct{}{}
		}
	}

	result.CourseCodes = sortedKeys(courseSet)
	result.OutcomeCodes = sortedKeys(outcomeSet)
	result.Cells = make([]MatrixCell, 0, len(result.lookup))
	for key, w := range result.lookup {
		result.Cells = append(result.Cells, MatrixCell{CourseCode: key.CourseCode, OutcomeCode: key.OutcomeCode, Weight: w})
	}
	sort.Slice(result.Cells, func(i, j int) bool {
		if result.Cells[i].CourseCode != result.Cells[j].CourseCode {
			return result.Cells[i].CourseCode < result.Cells[j].CourseCode
		}
		return result.Cells[i].OutcomeCode < result.Cells[j].OutcomeCode
	})
	return result
}

// courseIndex resolves heterogeneous course references against the known
// course list: by ID when the reference carries one, otherwise by folded code
// or name.
type courseIndex struct {
	byID       map[int]CourseInput
	idByFolded map[string]int
	// codeByID prefers the code observed on enrollment rows over the course's
	// own code field.
	codeByID map[int]string
}

func newCourseIndex(courses []CourseInput, enrollments []EnrollmentInput) *courseIndex {
	idx := &courseIndex{
		byID:       make(map[int]CourseInput, len(courses)),
		idByFolded: make(map[string]int),
		codeByID:   make(map[int]string),
	}
	for _, c := range courses {
		if _, seen := idx.byID[c.ID]; seen {
			continue
		}
		idx.byID[c.ID] = c
		if folded := normalization.NormalizeName(c.Code); folded != "" {
			if _, taken := idx.idByFolded[folded]; !taken {
				idx.idByFolded[folded] = c.ID
			}
		}
		if folded := normalization.NormalizeName(c.Name); folded != "" {
			if _, taken := idx.idByFolded[folded]; !taken {
				idx.idByFolded[folded] = c.ID
			}
		}
	}
	for _, e := range enrollments {
		id, ok := idx.resolve(e.Course)
		if !ok {
			continue
		}
		if e.Course.Code != "" {
			if _, seen := idx.codeByID[id]; !seen {
				idx.codeByID[id] = e.Course.Code
			}
		}
	}
	return idx
}

func (idx *courseIndex) resolve(ref normalization.Ref) (int, bool) {
	if id, ok := ref.ID(); ok {
		return id, true
	}
	if folded := normalization.NormalizeName(ref.Code); folded != "" {
		if id, ok := idx.idByFolded[folded]; ok {
			return id, true
		}
	}
	if folded := normalization.NormalizeName(ref.Name); folded != "" {
		if id, ok := idx.idByFolded[folded]; ok {
			return id, true
		}
	}
	return 0, false
}

func (idx *courseIndex) codeFor(courseID int, ref normalization.Ref) string {
	if code, ok := idx.codeByID[courseID]; ok {
		return code
	}
	if c, ok := idx.byID[courseID]; ok && c.Code != "" {
		return c.Code
	}
	return ref.Code
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
