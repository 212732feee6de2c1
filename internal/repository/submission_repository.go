package repository

import (
	"time"

	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/util"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Create inserts the submission after a transaction-scoped duplicate
// check. The unique (student_id, assignment_id) index is the
// authoritative guard; the check just yields a clean error first.
func (r *SubmissionRepository) Create(submission *model.Submission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Submission{}).
			Where("student_id = ? AND assignment_id = ?", submission.StudentID, submission.AssignmentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrAlreadySubmitted
		}
		return tx.Create(submission).Error
	})
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.
		Preload("Student").
		Preload("PeerReviews").
		Preload("PeerReviews.Reviewer").
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) Save(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}

// FindPendingForAssignment returns submissions on the assignment that the
// student can still review: not their own, not yet reviewed by them. Both
// filters run in the query rather than per row in application code.
func (r *SubmissionRepository) FindPendingForAssignment(assignmentID, studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Preload("Student").
		Preload("PeerReviews").
		Preload("PeerReviews.Reviewer").
		Where("assignment_id = ? AND student_id <> ?", assignmentID, studentID).
		Where("id NOT IN (?)",
			r.DB.Table("peer_reviews").Select("submission_id").Where("reviewer_id = ?", studentID),
		).
		Find(&submissions).Error
	return submissions, err
}

// Delete cascades to the submission's peer reviews.
func (r *SubmissionRepository) Delete(submissionID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", submissionID).Delete(&model.PeerReview{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Submission{}, submissionID).Error
	})
}
