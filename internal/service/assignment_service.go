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

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	ClassRepo      *repository.ClassRepository
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, classRepo *repository.ClassRepository) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		ClassRepo:      classRepo,
	}
}

// AssignmentPatch carries partial-update fields; nil pointers mean
// "leave unchanged". DueDateSet distinguishes clearing the due date from
// not touching it.
type AssignmentPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	DueDateSet  bool
}

// requireOwnedClass is the ownership gate shared by every assignment
// operation: the class must exist and belong to the teacher.
func (s *AssignmentService) requireOwnedClass(teacher *model.User, classID uint) error {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrClassNotFound
		}
		return err
	}
	if class.OwnerID != teacher.ID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *AssignmentService) CreateAssignment(teacher *model.User, classID uint, title, description string, dueDate *time.Time) (*model.Assignment, error) {
	if err := s.requireOwnedClass(teacher, classID); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		DueDate:     dueDate,
		ClassID:     classID,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) UpdateAssignment(teacher *model.User, classID, assignmentID uint, patch AssignmentPatch) (*model.Assignment, error) {
	if err := s.requireOwnedClass(teacher, classID); err != nil {
		return nil, err
	}

	assignment, err := s.AssignmentRepo.FindByIDInClass(assignmentID, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	if patch.Title != nil {
		assignment.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		assignment.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDateSet {
		assignment.DueDate = patch.DueDate
	}

	if err := s.AssignmentRepo.Save(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) DeleteAssignment(teacher *model.User, classID, assignmentID uint) error {
	if err := s.requireOwnedClass(teacher, classID); err != nil {
		return err
	}

	assignment, err := s.AssignmentRepo.FindByIDInClass(assignmentID, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAssignmentNotFound
		}
		return err
	}

	return s.AssignmentRepo.Delete(assignment.ID)
}
