package repository

import (
	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/util"
)

type PeerReviewRepository struct {
	DB *gorm.DB
}

func NewPeerReviewRepository(db *gorm.DB) *PeerReviewRepository {
	return &PeerReviewRepository{DB: db}
}

// Create inserts the review after a transaction-scoped duplicate check;
// the unique (reviewer_id, submission_id) index is the final word.
func (r *PeerReviewRepository) Create(review *model.PeerReview) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PeerReview{}).
			Where("reviewer_id = ? AND submission_id = ?", review.ReviewerID, review.SubmissionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrAlreadyReviewed
		}
		return tx.Create(review).Error
	})
}

func (r *PeerReviewRepository) FindByID(id uint) (*model.PeerReview, error) {
	var review model.PeerReview
	err := r.DB.Preload("Reviewer").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}
