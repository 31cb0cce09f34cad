package outcomes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type DepartmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, departments []*types.Department) ([]*types.Department, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, departmentIDs []int) ([]*types.Department, error)
}

type departmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDepartmentRepo(db *gorm.DB, baseLog *logger.Logger) DepartmentRepo {
	return &departmentRepo{db: db, log: baseLog.With("repo", "DepartmentRepo")}
}

func (r *departmentRepo) Create(ctx context.Context, tx *gorm.DB, departments []*types.Department) ([]*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(departments) == 0 {
		return []*types.Department{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, departmentIDs []int) ([]*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Department
	if len(departmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", departmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
