// Package domain re-exports the persisted model types so callers can import a
// single `types` package.
package domain

import (
	"github.com/beyzakarasahann/AcuRate-sub001/internal/domain/outcomes"
)

const (
	KindProgramOutcome  = outcomes.KindProgramOutcome
	KindLearningOutcome = outcomes.KindLearningOutcome
)

type Department = outcomes.Department
type Course = outcomes.Course
type Enrollment = outcomes.Enrollment
type Outcome = outcomes.Outcome
type Assessment = outcomes.Assessment
type Grade = outcomes.Grade
type AchievementRecord = outcomes.AchievementRecord

func PtrFloat(v float64) *float64 { return &v }
