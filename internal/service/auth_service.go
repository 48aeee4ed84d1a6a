package service

import (
	"errors"
	"fmt"

	"go-stocktrack/internal/apperror"
	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/pkg/jwt"
	"go-stocktrack/pkg/validator"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a Staff account. Role escalation is an admin-only
// operation through the user management endpoints.
func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Dependency("failed to look up email", err)
	}
	if existing != nil {
		return nil, apperror.Validation("email already exists")
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     model.RoleStaff,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Dependency("failed to hash password", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperror.Dependency("failed to create user", err)
	}

	return s.issueToken(user)
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, apperror.Authentication("invalid email or password")
	}

	if !user.CheckPassword(password) {
		return nil, apperror.Authentication("invalid email or password")
	}

	return s.issueToken(user)
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return apperror.NotFound("user not found")
	}

	if !user.CheckPassword(oldPassword) {
		return apperror.Authentication("current password is incorrect")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return apperror.Dependency("failed to hash new password", err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return apperror.Dependency("failed to update password", err)
	}

	return nil
}

func (s *authService) issueToken(user *model.User) (*LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, user.Role)
	if err != nil {
		return nil, apperror.Dependency("failed to generate token", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
