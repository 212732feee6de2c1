package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewin_backend/internal/model"
	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/util"
)

type AuthService struct {
	UserRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{UserRepo: userRepo}
}

// Register validates the account details, hashes the password and stores
// the new user. Only the bcrypt hash is ever persisted.
func (s *AuthService) Register(name, email, password, role string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.ToLower(strings.TrimSpace(role))

	if !model.ValidRole(role) {
		return nil, util.NewValidationError("role must be 'teacher' or 'student'")
	}
	if !util.ValidateEmail(email) {
		return nil, util.NewValidationError("invalid email format")
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, util.NewValidationError(err.Error())
	}

	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.UserRole(role),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate fails the same way whether the email is unknown or the
// password is wrong, so accounts cannot be enumerated.
func (s *AuthService) Authenticate(email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return user, nil
}
