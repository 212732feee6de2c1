package repository

import (
	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/util"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

// detailPreloads loads everything the class detail view can show: the
// roster, and assignments down to their submissions and reviews.
func detailPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Students").
		Preload("Assignments").
		Preload("Assignments.Submissions").
		Preload("Assignments.Submissions.Student").
		Preload("Assignments.Submissions.PeerReviews").
		Preload("Assignments.Submissions.PeerReviews.Reviewer")
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var class model.Class
	err := r.DB.Preload("Owner").Preload("Students").First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) FindByIDWithDetail(id uint) (*model.Class, error) {
	var class model.Class
	err := detailPreloads(r.DB).First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// FindByOwner returns the classes a teacher owns, newest first.
func (r *ClassRepository) FindByOwner(ownerID uint) ([]model.Class, error) {
	var classes []model.Class
	err := detailPreloads(r.DB).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&classes).Error
	return classes, err
}

// FindEnrolled returns the classes a student has joined, newest first.
func (r *ClassRepository) FindEnrolled(userID uint) ([]model.Class, error) {
	var classes []model.Class
	err := detailPreloads(r.DB).
		Joins("JOIN class_students ON class_students.class_id = classes.id").
		Where("class_students.user_id = ?", userID).
		Order("classes.created_at DESC").
		Find(&classes).Error
	return classes, err
}

func (r *ClassRepository) IsEnrolled(classID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassStudent{}).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Count(&count).Error
	return count > 0, err
}

// Enroll adds the student to the roster. The duplicate check and the
// insert run in one transaction; the composite primary key on
// class_students backs it up against concurrent joins.
func (r *ClassRepository) Enroll(classID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ClassStudent{}).
			Where("class_id = ? AND user_id = ?", classID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrAlreadyEnrolled
		}
		return tx.Create(&model.ClassStudent{ClassID: classID, UserID: userID}).Error
	})
}

// Unenroll removes the membership row only. Submissions and reviews the
// student already made in this class stay behind as historical records.
func (r *ClassRepository) Unenroll(classID, userID uint) error {
	res := r.DB.Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&model.ClassStudent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotEnrolled
	}
	return nil
}

// Delete removes the class and everything beneath it, child rows first,
// in a single transaction so no orphans survive a partial failure.
func (r *ClassRepository) Delete(classID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"submission_id IN (?)",
			tx.Table("submissions").Select("id").Where(
				"assignment_id IN (?)",
				tx.Table("assignments").Select("id").Where("class_id = ?", classID),
			),
		).Delete(&model.PeerReview{}).Error; err != nil {
			return err
		}

		if err := tx.Where(
			"assignment_id IN (?)",
			tx.Table("assignments").Select("id").Where("class_id = ?", classID),
		).Delete(&model.Submission{}).Error; err != nil {
			return err
		}

		if err := tx.Where("class_id = ?", classID).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("class_id = ?", classID).Delete(&model.ClassStudent{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Class{}, classID).Error
	})
}
