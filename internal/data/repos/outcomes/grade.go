package outcomes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type GradeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, grades []*types.Grade) ([]*types.Grade, error)
	GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []int) ([]*types.Grade, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []int) ([]*types.Grade, error)
}

type gradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	return &gradeRepo{db: db, log: baseLog.With("repo", "GradeRepo")}
}

func (r *gradeRepo) Create(ctx context.Context, tx *gorm.DB, grades []*types.Grade) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(grades) == 0 {
		return []*types.Grade{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []int) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Grade
	if len(assessmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []int) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Grade
	if len(studentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
