package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Department{},
		&types.Course{},
		&types.Enrollment{},

		&types.Outcome{},
		&types.Assessment{},
		&types.Grade{},
		&types.AchievementRecord{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	if err := AutoMigrateAll(s.db); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
