package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/pkg/database"
)

// setupTestDB opens a fresh in-memory database per test. The unique name
// keeps parallel tests from sharing state through the sqlite cache.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClass(t *testing.T, db *gorm.DB, owner *model.User, name string) *model.Class {
	t.Helper()

	svc := NewClassService(repository.NewClassRepository(db))
	class, err := svc.CreateClass(owner, name, "Biology", "10", "")
	require.NoError(t, err)
	return class
}

func enroll(t *testing.T, db *gorm.DB, class *model.Class, student *model.User) {
	t.Helper()
	require.NoError(t, repository.NewClassRepository(db).Enroll(class.ID, student.ID))
}

func seedAssignment(t *testing.T, db *gorm.DB, class *model.Class, title string) *model.Assignment {
	t.Helper()

	assignment := &model.Assignment{Title: title, ClassID: class.ID}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

func seedSubmission(t *testing.T, db *gorm.DB, assignment *model.Assignment, student *model.User, content string) *model.Submission {
	t.Helper()

	repo := repository.NewSubmissionRepository(db)
	submission := &model.Submission{
		Content:      content,
		StudentID:    student.ID,
		AssignmentID: assignment.ID,
	}
	require.NoError(t, repo.Create(submission))
	return submission
}

func count(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}
