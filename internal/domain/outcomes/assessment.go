package outcomes

import (
	"time"

	"gorm.io/datatypes"
)

// Assessment is a graded item inside one course. Weight is course-local and
// not globally normalized; weights across a course's assessments need not sum
// to 100. RelatedOutcomeIDs links the assessment to the outcomes it measures.
type Assessment struct {
	ID                int            `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID          int            `gorm:"column:course_id;not null;index" json:"course_id"`
	Type              string         `gorm:"column:type;not null" json:"type"`
	Weight            float64        `gorm:"column:weight;not null;default:0" json:"weight"`
	MaxScore          float64        `gorm:"column:max_score;not null;default:100" json:"max_score"`
	RelatedOutcomeIDs datatypes.JSON `gorm:"column:related_outcome_ids;type:jsonb" json:"related_outcome_ids,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assessment) TableName() string { return "assessment" }

// Grade is at most one score per (assessment, student). A missing row means
// ungraded, which the calculators treat as absent rather than zero.
type Grade struct {
	ID           int     `gorm:"primaryKey;autoIncrement" json:"id"`
	AssessmentID int     `gorm:"column:assessment_id;not null;index:idx_grade_assessment_student,unique,priority:1" json:"assessment_id"`
	StudentID    int     `gorm:"column:student_id;not null;index:idx_grade_assessment_student,unique,priority:2" json:"student_id"`
	Score        float64 `gorm:"column:score;not null" json:"score"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Grade) TableName() string { return "grade" }
