// Package steps holds the pure computation steps of the outcome achievement
// engine. Every function here is side-effect free: it owns its inputs,
// allocates its own lookups, and is safe to call from concurrent goroutines.
package steps

import (
	"github.com/beyzakarasahann/AcuRate-sub001/internal/normalization"
)

// Snapshot is one page-load's worth of upstream data. Reference-valued fields
// use normalization.Ref because upstream payloads are inconsistent about
// whether they embed objects or bare IDs.
type Snapshot struct {
	Courses      []CourseInput      `json:"courses"`
	Outcomes     []OutcomeInput     `json:"outcomes"`
	Assessments  []AssessmentInput  `json:"assessments"`
	Grades       []GradeInput       `json:"grades"`
	Enrollments  []EnrollmentInput  `json:"enrollments"`
	Achievements []AchievementInput `json:"achievements"`
}

type CourseInput struct {
	ID         int               `json:"id"`
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	Department normalization.Ref `json:"department,omitempty"`
}

type OutcomeInput struct {
	ID               int               `json:"id"`
	Code             string            `json:"code"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Kind             string            `json:"kind"`
	TargetPercentage float64           `json:"target_percentage"`
	IsActive         bool              `json:"is_active"`
	Department       normalization.Ref `json:"department,omitempty"`
	Course           normalization.Ref `json:"course,omitempty"`
}

type AssessmentInput struct {
	ID              int                 `json:"id"`
	Course          normalization.Ref   `json:"course"`
	Type            string              `json:"type,omitempty"`
	Weight          float64             `json:"weight"`
	MaxScore        float64             `json:"max_score"`
	RelatedOutcomes []normalization.Ref `json:"related_outcomes,omitempty"`
}

type GradeInput struct {
	Assessment normalization.Ref `json:"assessment"`
	Student    normalization.Ref `json:"student"`
	Score      float64           `json:"score"`
}

type EnrollmentInput struct {
	Student    normalization.Ref `json:"student"`
	Course     normalization.Ref `json:"course"`
	IsActive   bool              `json:"is_active"`
	FinalGrade *float64          `json:"final_grade,omitempty"`
}

type AchievementInput struct {
	Outcome normalization.Ref `json:"outcome"`
	// OutcomeCode is a secondary join key some upstream rows carry instead of
	// a usable outcome reference. It is consulted only when the ID join misses.
	OutcomeCode       string            `json:"outcome_code,omitempty"`
	Student           normalization.Ref `json:"student,omitempty"`
	CurrentPercentage *float64          `json:"current_percentage,omitempty"`
}
