package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
)

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID, courseID int, active bool) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		IsActive:  active,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedGrade(tb testing.TB, ctx context.Context, tx *gorm.DB, assessmentID, studentID int, score float64) *types.Grade {
	tb.Helper()
	g := &types.Grade{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		Score:        score,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed grade: %v", err)
	}
	return g
}

func SeedAchievement(tb testing.TB, ctx context.Context, tx *gorm.DB, outcomeID, studentID int, current *float64) *types.AchievementRecord {
	tb.Helper()
	rec := &types.AchievementRecord{
		OutcomeID:         outcomeID,
		StudentID:         studentID,
		CurrentPercentage: current,
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed achievement: %v", err)
	}
	return rec
}
