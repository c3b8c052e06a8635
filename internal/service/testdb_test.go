// internal/service/testdb_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"course_portal/internal/config"
	"course_portal/internal/model"
	"course_portal/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリ SQLite を返す (トランザクションを張るサービス用)
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database for testing")
	require.NoError(t, repository.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "Course Portal", FrontendURL: "http://localhost:5173"},
		JWT:   config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 15 * time.Minute},
		Admin: config.AdminConfig{Emails: []string{"owner@example.com"}},
	}
}

// seedAccount は実DBにアカウントを作る
func seedAccount(t *testing.T, db *gorm.DB, email string, status model.PaymentStatus, access ...model.CourseID) *model.Account {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	if access == nil {
		access = []model.CourseID{}
	}
	a := &model.Account{
		AccountID:     uuid.New(),
		Email:         email,
		Name:          "Learner",
		PasswordHash:  string(hashed),
		CourseAccess:  access,
		PaymentStatus: status,
	}
	require.NoError(t, repository.NewGormAccountRepository().Create(context.Background(), db, a))
	return a
}
