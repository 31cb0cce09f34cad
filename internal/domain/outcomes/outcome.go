package outcomes

import (
	"time"
)

// OutcomeKind distinguishes program-level from course-level outcomes.
const (
	KindProgramOutcome  = "po"
	KindLearningOutcome = "lo"
)

// Outcome is a PO or LO definition. POs scope to a department, LOs to a
// course; exactly one of DepartmentID/CourseID is set. Definitions are
// authored externally and read-only inside an aggregation run.
type Outcome struct {
	ID               int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string  `gorm:"column:code;not null;index" json:"code"`
	Title            string  `gorm:"column:title;not null" json:"title"`
	Description      string  `gorm:"column:description;type:text" json:"description,omitempty"`
	Kind             string  `gorm:"column:kind;not null;index" json:"kind"`
	TargetPercentage float64 `gorm:"column:target_percentage;not null;default:70" json:"target_percentage"`
	IsActive         bool    `gorm:"column:is_active;not null;default:true;index" json:"is_active"`

	DepartmentID *int `gorm:"column:department_id;index" json:"department_id,omitempty"`
	CourseID     *int `gorm:"column:course_id;index" json:"course_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Outcome) TableName() string { return "outcome" }

// AchievementRecord is a per-student attainment row produced upstream.
// A nil CurrentPercentage means the outcome has not been measured for the
// student yet, which is distinct from a measured 0%.
type AchievementRecord struct {
	ID                int      `gorm:"primaryKey;autoIncrement" json:"id"`
	OutcomeID         int      `gorm:"column:outcome_id;not null;index:idx_achievement_outcome_student,priority:1" json:"outcome_id"`
	StudentID         int      `gorm:"column:student_id;not null;index:idx_achievement_outcome_student,priority:2" json:"student_id"`
	CurrentPercentage *float64 `gorm:"column:current_percentage" json:"current_percentage,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AchievementRecord) TableName() string { return "achievement_record" }
