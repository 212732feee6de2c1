package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
	ClassRepo      *repository.ClassRepository
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	assignmentRepo *repository.AssignmentRepository,
	classRepo *repository.ClassRepository,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		ClassRepo:      classRepo,
	}
}

// SubmissionPatch carries partial-update fields for a resubmission.
type SubmissionPatch struct {
	Content  *string
	FileName *string
	FileSize *int64
}

// findInChain resolves a submission only when it sits under the given
// assignment and class; anything off the chain reads as absent.
func (s *SubmissionService) findInChain(submissionID, assignmentID, classID uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.AssignmentID != assignmentID {
		return nil, util.ErrSubmissionNotFound
	}
	if _, err := s.AssignmentRepo.FindByIDInClass(assignmentID, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) CreateSubmission(student *model.User, classID, assignmentID uint, content, fileName string, fileSize int64) (*model.Submission, error) {
	if _, err := s.ClassRepo.FindByID(classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}

	enrolled, err := s.ClassRepo.IsEnrolled(classID, student.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	if _, err := s.AssignmentRepo.FindByIDInClass(assignmentID, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	submission := &model.Submission{
		Content:      strings.TrimSpace(content),
		FileName:     fileName,
		FileSize:     fileSize,
		StudentID:    student.ID,
		AssignmentID: assignmentID,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	submission.Student = student
	return submission, nil
}

// UpdateSubmission edits the student's own submission and refreshes
// submitted_at, marking it resubmitted.
func (s *SubmissionService) UpdateSubmission(student *model.User, classID, assignmentID, submissionID uint, patch SubmissionPatch) (*model.Submission, error) {
	submission, err := s.findInChain(submissionID, assignmentID, classID)
	if err != nil {
		return nil, err
	}
	if submission.StudentID != student.ID {
		return nil, util.ErrPermissionDenied
	}

	if patch.Content != nil {
		submission.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.FileName != nil {
		submission.FileName = *patch.FileName
	}
	if patch.FileSize != nil {
		submission.FileSize = *patch.FileSize
	}
	submission.SubmittedAt = time.Now()

	if err := s.SubmissionRepo.Save(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) DeleteSubmission(student *model.User, classID, assignmentID, submissionID uint) error {
	submission, err := s.findInChain(submissionID, assignmentID, classID)
	if err != nil {
		return err
	}
	if submission.StudentID != student.ID {
		return util.ErrPermissionDenied
	}

	return s.SubmissionRepo.Delete(submission.ID)
}

// GradeSubmission sets grade, feedback and graded_at. Re-grading simply
// overwrites all three.
func (s *SubmissionService) GradeSubmission(teacher *model.User, classID, assignmentID, submissionID uint, grade, feedback string) (*model.Submission, error) {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	if class.OwnerID != teacher.ID {
		return nil, util.ErrPermissionDenied
	}

	submission, err := s.findInChain(submissionID, assignmentID, classID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.Grade = strings.TrimSpace(grade)
	submission.Feedback = strings.TrimSpace(feedback)
	submission.GradedAt = &now

	if err := s.SubmissionRepo.Save(submission); err != nil {
		return nil, err
	}
	return submission, nil
}
