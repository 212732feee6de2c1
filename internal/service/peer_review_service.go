package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

type PeerReviewService struct {
	ReviewRepo     *repository.PeerReviewRepository
	SubmissionRepo *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
	ClassRepo      *repository.ClassRepository
}

func NewPeerReviewService(
	reviewRepo *repository.PeerReviewRepository,
	submissionRepo *repository.SubmissionRepository,
	assignmentRepo *repository.AssignmentRepository,
	classRepo *repository.ClassRepository,
) *PeerReviewService {
	return &PeerReviewService{
		ReviewRepo:     reviewRepo,
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		ClassRepo:      classRepo,
	}
}

// PendingReview is one reviewable submission together with where it
// lives, for the student's review queue.
type PendingReview struct {
	Class      *model.Class
	Assignment *model.Assignment
	Submission model.Submission
}

func (s *PeerReviewService) CreateReview(reviewer *model.User, classID, assignmentID, submissionID uint, content string) (*model.PeerReview, error) {
	if _, err := s.ClassRepo.FindByID(classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}

	enrolled, err := s.ClassRepo.IsEnrolled(classID, reviewer.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

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

	if submission.StudentID == reviewer.ID {
		return nil, util.ErrSelfReview
	}

	review := &model.PeerReview{
		Content:      strings.TrimSpace(content),
		ReviewerID:   reviewer.ID,
		SubmissionID: submissionID,
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}

	review.Reviewer = reviewer
	return review, nil
}

// ListPendingReviews walks the student's enrolled classes in class →
// assignment → submission order; the not-own and not-yet-reviewed
// filters run inside the storage query.
func (s *PeerReviewService) ListPendingReviews(student *model.User) ([]PendingReview, error) {
	classes, err := s.ClassRepo.FindEnrolled(student.ID)
	if err != nil {
		return nil, err
	}

	pending := []PendingReview{}
	for i := range classes {
		class := &classes[i]
		for j := range class.Assignments {
			assignment := &class.Assignments[j]
			submissions, err := s.SubmissionRepo.FindPendingForAssignment(assignment.ID, student.ID)
			if err != nil {
				return nil, err
			}
			for _, submission := range submissions {
				pending = append(pending, PendingReview{
					Class:      class,
					Assignment: assignment,
					Submission: submission,
				})
			}
		}
	}

	return pending, nil
}
