package repository

import (
	"gorm.io/gorm"

	"reviewin_backend/internal/model"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

// FindByIDInClass resolves the assignment only when it sits under the
// given class, so a wrong parent in the URL reads as absent.
func (r *AssignmentRepository) FindByIDInClass(assignmentID, classID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Preload("Submissions").
		Where("id = ? AND class_id = ?", assignmentID, classID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) Save(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

// Delete cascades to the assignment's submissions and their reviews.
func (r *AssignmentRepository) Delete(assignmentID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"submission_id IN (?)",
			tx.Table("submissions").Select("id").Where("assignment_id = ?", assignmentID),
		).Delete(&model.PeerReview{}).Error; err != nil {
			return err
		}

		if err := tx.Where("assignment_id = ?", assignmentID).Delete(&model.Submission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Assignment{}, assignmentID).Error
	})
}
