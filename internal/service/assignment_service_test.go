package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

func newAssignmentService(db *gorm.DB) *AssignmentService {
	return NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewClassRepository(db),
	)
}

func TestCreateAssignmentRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newAssignmentService(db)
	teacher := seedUser(t, db, "Teacher", "t@example.com", model.RoleTeacher)
	rival := seedUser(t, db, "Rival", "r@example.com", model.RoleTeacher)
	class := seedClass(t, db, teacher, "Biology 101")

	due := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	assignment, err := svc.CreateAssignment(teacher, class.ID, "  Lab report  ", "Write it up", &due)
	require.NoError(t, err)
	assert.Equal(t, "Lab report", assignment.Title)
	require.NotNil(t, assignment.DueDate)
	assert.True(t, assignment.DueDate.Equal(due))

	_, err = svc.CreateAssignment(rival, class.ID, "Hijack", "", nil)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.CreateAssignment(teacher, class.ID+1000, "Nowhere", "", nil)
	assert.ErrorIs(t, err, util.ErrClassNotFound)
}

func TestUpdateAssignmentPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := newAssignmentService(db)
	teacher := seedUser(t, db, "Teacher", "t@example.com", model.RoleTeacher)
	class := seedClass(t, db, teacher, "Biology 101")

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	assignment, err := svc.CreateAssignment(teacher, class.ID, "Lab report", "Write it up", &due)
	require.NoError(t, err)

	title := "Final lab report"
	updated, err := svc.UpdateAssignment(teacher, class.ID, assignment.ID, AssignmentPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final lab report", updated.Title)
	assert.Equal(t, "Write it up", updated.Description)
	require.NotNil(t, updated.DueDate)

	// DueDateSet with a nil value clears the due date.
	updated, err = svc.UpdateAssignment(teacher, class.ID, assignment.ID, AssignmentPatch{DueDateSet: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	_, err = svc.UpdateAssignment(teacher, class.ID, assignment.ID+1000, AssignmentPatch{Title: &title})
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}

func TestDeleteAssignmentCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := newAssignmentService(db)
	teacher := seedUser(t, db, "Teacher", "t@example.com", model.RoleTeacher)
	student := seedUser(t, db, "Student", "s@example.com", model.RoleStudent)
	class := seedClass(t, db, teacher, "Biology 101")
	enroll(t, db, class, student)

	assignment := seedAssignment(t, db, class, "Lab report")
	seedSubmission(t, db, assignment, student, "my findings")

	require.NoError(t, svc.DeleteAssignment(teacher, class.ID, assignment.ID))

	assert.Zero(t, count(t, db, &model.Assignment{}))
	assert.Zero(t, count(t, db, &model.Submission{}))

	err := svc.DeleteAssignment(teacher, class.ID, assignment.ID)
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}

func TestAssignmentScopedToClass(t *testing.T) {
	db := setupTestDB(t)
	svc := newAssignmentService(db)
	teacher := seedUser(t, db, "Teacher", "t@example.com", model.RoleTeacher)
	classA := seedClass(t, db, teacher, "Biology 101")
	classB := seedClass(t, db, teacher, "Chemistry 101")

	assignment := seedAssignment(t, db, classA, "Lab report")

	// The assignment cannot be reached through another class.
	title := "renamed"
	_, err := svc.UpdateAssignment(teacher, classB.ID, assignment.ID, AssignmentPatch{Title: &title})
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}
