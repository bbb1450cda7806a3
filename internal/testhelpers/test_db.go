package testhelpers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saiteja-29/V-Hire/internal/models"
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	err = db.AutoMigrate(
		&models.InterviewRequest{},
		&models.InterviewReport{},
		&models.SettlementRecord{},
		&models.InterviewerProfile{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}

// DropInterviewTable removes the requests table to force repository errors.
func DropInterviewTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := db.Migrator().DropTable(&models.InterviewRequest{}); err != nil {
		panic(fmt.Sprintf("failed to drop interview table: %v", err))
	}
}
