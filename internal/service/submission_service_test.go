package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

func newSubmissionService(db *gorm.DB) *SubmissionService {
	return NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewClassRepository(db),
	)
}

type submissionFixture struct {
	teacher    *model.User
	student    *model.User
	class      *model.Class
	assignment *model.Assignment
}

func setupSubmissionFixture(t *testing.T, db *gorm.DB) submissionFixture {
	t.Helper()

	teacher := seedUser(t, db, "Teacher", "t@example.com", model.RoleTeacher)
	student := seedUser(t, db, "Student", "s@example.com", model.RoleStudent)
	class := seedClass(t, db, teacher, "Biology 101")
	enroll(t, db, class, student)
	assignment := seedAssignment(t, db, class, "Lab report")

	return submissionFixture{teacher: teacher, student: student, class: class, assignment: assignment}
}

func TestCreateSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)
	fx := setupSubmissionFixture(t, db)
	outsider := seedUser(t, db, "Outsider", "o@example.com", model.RoleStudent)

	submission, err := svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID, "  my findings  ", "report.pdf", 2048)
	require.NoError(t, err)
	assert.Equal(t, "my findings", submission.Content)
	assert.Equal(t, "report.pdf", submission.FileName)
	assert.False(t, submission.SubmittedAt.IsZero())
	assert.Nil(t, submission.GradedAt)

	_, err = svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID, "again", "", 0)
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	_, err = svc.CreateSubmission(outsider, fx.class.ID, fx.assignment.ID, "sneaky", "", 0)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID+1000, "lost", "", 0)
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)

	_, err = svc.CreateSubmission(fx.student, fx.class.ID+1000, fx.assignment.ID, "lost", "", 0)
	assert.ErrorIs(t, err, util.ErrClassNotFound)
}

func TestUpdateSubmissionResubmits(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)
	fx := setupSubmissionFixture(t, db)
	other := seedUser(t, db, "Other", "o@example.com", model.RoleStudent)
	enroll(t, db, fx.class, other)

	created, err := svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID, "first draft", "", 0)
	require.NoError(t, err)

	content := "second draft"
	updated, err := svc.UpdateSubmission(fx.student, fx.class.ID, fx.assignment.ID, created.ID, SubmissionPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
	assert.False(t, updated.SubmittedAt.Before(created.SubmittedAt))

	// Only the author can touch it.
	_, err = svc.UpdateSubmission(other, fx.class.ID, fx.assignment.ID, created.ID, SubmissionPatch{Content: &content})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Reaching it through the wrong assignment reads as absent.
	otherAssignment := seedAssignment(t, db, fx.class, "Essay")
	_, err = svc.UpdateSubmission(fx.student, fx.class.ID, otherAssignment.ID, created.ID, SubmissionPatch{Content: &content})
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestDeleteSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)
	fx := setupSubmissionFixture(t, db)

	created, err := svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID, "draft", "", 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubmission(fx.student, fx.class.ID, fx.assignment.ID, created.ID))
	assert.Zero(t, count(t, db, &model.Submission{}))

	// Deleting clears the way for a fresh submission.
	_, err = svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID, "new draft", "", 0)
	assert.NoError(t, err)
}

func TestGradeSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)
	fx := setupSubmissionFixture(t, db)
	rival := seedUser(t, db, "Rival", "r@example.com", model.RoleTeacher)

	created, err := svc.CreateSubmission(fx.student, fx.class.ID, fx.assignment.ID, "my findings", "", 0)
	require.NoError(t, err)

	graded, err := svc.GradeSubmission(fx.teacher, fx.class.ID, fx.assignment.ID, created.ID, "A-", "Nice work")
	require.NoError(t, err)
	assert.Equal(t, "A-", graded.Grade)
	assert.Equal(t, "Nice work", graded.Feedback)
	require.NotNil(t, graded.GradedAt)

	// Re-grading overwrites.
	graded, err = svc.GradeSubmission(fx.teacher, fx.class.ID, fx.assignment.ID, created.ID, "B+", "On second thought")
	require.NoError(t, err)
	assert.Equal(t, "B+", graded.Grade)

	_, err = svc.GradeSubmission(rival, fx.class.ID, fx.assignment.ID, created.ID, "F", "")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
