package outcomes

import (
	"time"
)

type Department struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Department) TableName() string { return "department" }

type Course struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string `gorm:"column:code;not null;index" json:"code"`
	Name         string `gorm:"column:name;not null" json:"name"`
	DepartmentID *int   `gorm:"column:department_id;index" json:"department_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

// Enrollment ties a student to a course. Upstream rows may duplicate the same
// logical enrollment under differing course representations; the engine
// collapses those at ingestion.
type Enrollment struct {
	ID         int      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID  int      `gorm:"column:student_id;not null;index" json:"student_id"`
	CourseID   int      `gorm:"column:course_id;not null;index" json:"course_id"`
	IsActive   bool     `gorm:"column:is_active;not null;default:true" json:"is_active"`
	FinalGrade *float64 `gorm:"column:final_grade" json:"final_grade,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }
