package app

import (
	"gorm.io/gorm"

	repos "github.com/beyzakarasahann/AcuRate-sub001/internal/data/repos/outcomes"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/services"
)

type Repos struct {
	Department  repos.DepartmentRepo
	Course      repos.CourseRepo
	Outcome     repos.OutcomeRepo
	Assessment  repos.AssessmentRepo
	Grade       repos.GradeRepo
	Enrollment  repos.EnrollmentRepo
	Achievement repos.AchievementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Department:  repos.NewDepartmentRepo(db, log),
		Course:      repos.NewCourseRepo(db, log),
		Outcome:     repos.NewOutcomeRepo(db, log),
		Assessment:  repos.NewAssessmentRepo(db, log),
		Grade:       repos.NewGradeRepo(db, log),
		Enrollment:  repos.NewEnrollmentRepo(db, log),
		Achievement: repos.NewAchievementRepo(db, log),
	}
}

func (r Repos) aggregationRepos() services.AggregationRepos {
	return services.AggregationRepos{
		Departments:  r.Department,
		Courses:      r.Course,
		Outcomes:     r.Outcome,
		Assessments:  r.Assessment,
		Grades:       r.Grade,
		Enrollments:  r.Enrollment,
		Achievements: r.Achievement,
	}
}
