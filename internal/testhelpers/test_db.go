package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"novusarc/placement/internal/database"
	"novusarc/placement/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	openSQLite       = func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), database.GormConfig()) }
	migrateSchema    = database.Migrate
	dropRoundTableFn = func(db *gorm.DB) error { return db.Migrator().DropTable(&models.Round{}) }
)

// SetupTestDB creates an isolated in-memory SQLite database for tests. The
// pool is capped at one connection so concurrent tests queue instead of
// hitting SQLITE_LOCKED.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to get sql db: %v", err))
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}

// DropRoundTable removes the rounds table to force repository errors.
func DropRoundTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := dropRoundTableFn(db); err != nil {
		panic(fmt.Sprintf("failed to drop round table: %v", err))
	}
}

// SeedJob stores a company and a job and returns the job.
func SeedJob(t *testing.T, db *gorm.DB, title string) *models.Job {
	t.Helper()

	company := &models.Company{
		Name:                "Company for " + title,
		CompanyCode:         strings.ToUpper(models.Slugify(title)),
		CompanyCodeNovusarc: "COMP_TEST_" + models.Slugify(title),
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
	job := &models.Job{
		JobCode:   "JOB_TEST_" + models.Slugify(title),
		Title:     title,
		CompanyID: company.ID,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("failed to seed job: %v", err)
	}
	return job
}

// SeedApplication stores an application of studentID to jobID.
func SeedApplication(t *testing.T, db *gorm.DB, jobID, studentID string) *models.Application {
	t.Helper()

	app := &models.Application{JobID: jobID, StudentID: studentID}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}
	return app
}
