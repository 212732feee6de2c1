package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

type ClassService struct {
	ClassRepo *repository.ClassRepository
}

func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{ClassRepo: classRepo}
}

func (s *ClassService) CreateClass(owner *model.User, name, subject, grade, description string) (*model.Class, error) {
	class := &model.Class{
		Name:        strings.TrimSpace(name),
		Subject:     strings.TrimSpace(subject),
		Grade:       strings.TrimSpace(grade),
		Description: strings.TrimSpace(description),
		Passcode:    util.GeneratePasscode(),
		OwnerID:     owner.ID,
	}
	if err := s.ClassRepo.Create(class); err != nil {
		return nil, err
	}
	class.Owner = owner
	return class, nil
}

// ListClasses returns the user's classes for the dashboard: owned classes
// for the teacher filter, enrolled classes otherwise. Newest first.
func (s *ClassService) ListClasses(user *model.User, roleFilter string) ([]model.Class, error) {
	if roleFilter == "" {
		roleFilter = string(user.Role)
	}

	if roleFilter == string(model.RoleTeacher) {
		return s.ClassRepo.FindByOwner(user.ID)
	}
	return s.ClassRepo.FindEnrolled(user.ID)
}

// GetClass loads the class detail for an owner or enrolled student and
// reports which of the two the caller is; the owner view carries the
// passcode and roster.
func (s *ClassService) GetClass(user *model.User, classID uint) (*model.Class, bool, error) {
	class, err := s.ClassRepo.FindByIDWithDetail(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrClassNotFound
		}
		return nil, false, err
	}

	isOwner := class.OwnerID == user.ID
	if !isOwner {
		enrolled := false
		for _, st := range class.Students {
			if st.ID == user.ID {
				enrolled = true
				break
			}
		}
		if !enrolled {
			return nil, false, util.ErrPermissionDenied
		}
	}

	return class, isOwner, nil
}

func (s *ClassService) DeleteClass(user *model.User, classID uint) error {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrClassNotFound
		}
		return err
	}

	if class.OwnerID != user.ID {
		return util.ErrPermissionDenied
	}

	return s.ClassRepo.Delete(classID)
}

func (s *ClassService) JoinClass(user *model.User, classID uint, passcode string) (*model.Class, error) {
	class, err := s.ClassRepo.FindByID(classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}

	if class.Passcode != strings.TrimSpace(passcode) {
		return nil, util.ErrInvalidPasscode
	}

	if err := s.ClassRepo.Enroll(classID, user.ID); err != nil {
		return nil, err
	}

	return s.ClassRepo.FindByID(classID)
}

func (s *ClassService) LeaveClass(user *model.User, classID uint) error {
	if _, err := s.ClassRepo.FindByID(classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrClassNotFound
		}
		return err
	}

	// Prior submissions and reviews stay behind on purpose; leaving only
	// removes the membership link.
	return s.ClassRepo.Unenroll(classID, user.ID)
}
