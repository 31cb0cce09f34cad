package testutil

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/data/db"
	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.AutoMigrateAll(testDB); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func SeedDepartment(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Department {
	tb.Helper()
	d := &types.Department{Name: name}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed department: %v", err)
	}
	return d
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, departmentID int, code, name string) *types.Course {
	tb.Helper()
	c := &types.Course{Code: code, Name: name, DepartmentID: &departmentID}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedOutcome(tb testing.TB, ctx context.Context, tx *gorm.DB, departmentID int, code string, target float64) *types.Outcome {
	tb.Helper()
	o := &types.Outcome{
		Code:             code,
		Title:            code,
		Kind:             types.KindProgramOutcome,
		TargetPercentage: target,
		IsActive:         true,
		DepartmentID:     &departmentID,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed outcome: %v", err)
	}
	return o
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID int, weight, maxScore float64, relatedOutcomeIDs string) *types.Assessment {
	tb.Helper()
	if relatedOutcomeIDs == "" {
		relatedOutcomeIDs = "[]"
	}
	a := &types.Assessment{
		CourseID:          courseID,
		Type:              "exam",
		Weight:            weight,
		MaxScore:          maxScore,
		RelatedOutcomeIDs: datatypes.JSON([]byte(relatedOutcomeIDs)),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}
