package outcomes

import (
	"context"

	"gorm.io/gorm"

	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type AchievementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.AchievementRecord) ([]*types.AchievementRecord, error)
	GetByOutcomeIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []int) ([]*types.AchievementRecord, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []int) ([]*types.AchievementRecord, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (r *achievementRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.AchievementRecord) ([]*types.AchievementRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return []*types.AchievementRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *achievementRepo) GetByOutcomeIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []int) ([]*types.AchievementRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AchievementRecord
	if len(outcomeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("outcome_id IN ?", outcomeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *achievementRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []int) ([]*types.AchievementRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AchievementRecord
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
