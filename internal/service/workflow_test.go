package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewin_backend/internal/repository"
)

// Full workflow: register both roles, create a class, join it with the
// passcode, assign, submit, grade, then read the grade back.
func TestClassroomWorkflow(t *testing.T) {
	db := setupTestDB(t)

	authSvc := NewAuthService(repository.NewUserRepository(db))
	classSvc := NewClassService(repository.NewClassRepository(db))
	assignmentSvc := newAssignmentService(db)
	submissionSvc := newSubmissionService(db)

	teacher, err := authSvc.Register("Ms. Frizzle", "frizzle@example.com", "Password1", "teacher")
	require.NoError(t, err)
	student, err := authSvc.Register("Arnold", "arnold@example.com", "Password1", "student")
	require.NoError(t, err)

	class, err := classSvc.CreateClass(teacher, "Biology", "Science", "10", "")
	require.NoError(t, err)

	_, err = classSvc.JoinClass(student, class.ID, class.Passcode)
	require.NoError(t, err)

	assignment, err := assignmentSvc.CreateAssignment(teacher, class.ID, "Lab Report", "", nil)
	require.NoError(t, err)

	submission, err := submissionSvc.CreateSubmission(student, class.ID, assignment.ID, "My report", "", 0)
	require.NoError(t, err)

	_, err = submissionSvc.GradeSubmission(teacher, class.ID, assignment.ID, submission.ID, "A", "Great work!")
	require.NoError(t, err)

	detail, _, err := classSvc.GetClass(student, class.ID)
	require.NoError(t, err)
	require.Len(t, detail.Assignments, 1)
	require.Len(t, detail.Assignments[0].Submissions, 1)

	graded := detail.Assignments[0].Submissions[0]
	assert.Equal(t, "A", graded.Grade)
	assert.Equal(t, "Great work!", graded.Feedback)
	assert.NotNil(t, graded.GradedAt)
}
