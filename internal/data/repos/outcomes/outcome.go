package outcomes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type OutcomeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, outcomes []*types.Outcome) ([]*types.Outcome, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []int) ([]*types.Outcome, error)
	GetByDepartmentIDs(ctx context.Context, tx *gorm.DB, departmentIDs []int) ([]*types.Outcome, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []int) ([]*types.Outcome, error)
}

type outcomeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutcomeRepo(db *gorm.DB, baseLog *logger.Logger) OutcomeRepo {
	return &outcomeRepo{db: db, log: baseLog.With("repo", "OutcomeRepo")}
}

func (r *outcomeRepo) Create(ctx context.Context, tx *gorm.DB, outcomes []*types.Outcome) ([]*types.Outcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(outcomes) == 0 {
		return []*types.Outcome{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&outcomes).Error; err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *outcomeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []int) ([]*types.Outcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Outcome
	if len(outcomeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", outcomeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *outcomeRepo) GetByDepartmentIDs(ctx context.Context, tx *gorm.DB, departmentIDs []int) ([]*types.Outcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Outcome
	if len(departmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("department_id IN ?", departmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *outcomeRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []int) ([]*types.Outcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Outcome
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
