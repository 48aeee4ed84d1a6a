package service

import (
	"errors"
	"fmt"

	"go-stocktrack/internal/apperror"
	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	CreateUser(req *CreateUserRequest, actorID uuid.UUID) (*model.User, error)
	UpdateUserRole(targetID uuid.UUID, role model.Role, actorID uuid.UUID) (*model.User, error)
	DeleteUser(targetID, actorID uuid.UUID) error
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	FullName string     `json:"full_name" validate:"required"`
	Role     model.Role `json:"role" validate:"required"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperror.Dependency("failed to fetch users", err)
	}

	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Dependency("failed to fetch user", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, actorID uuid.UUID) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}
	if !req.Role.Valid() {
		return nil, apperror.Validation("role must be Admin or Staff")
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
		Role:     req.Role,
	}
	user.CreatedBy = actorID.String()
	user.UpdatedBy = actorID.String()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Dependency("failed to hash password", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperror.Dependency("failed to create user", err)
	}

	return user, nil
}

// UpdateUserRole changes a user's role. Admins cannot demote themselves:
// that would leave the request's own session with stale permissions and can
// lock the last admin out.
func (s *userService) UpdateUserRole(targetID uuid.UUID, role model.Role, actorID uuid.UUID) (*model.User, error) {
	if !role.Valid() {
		return nil, apperror.Validation("role must be Admin or Staff")
	}
	if targetID == actorID {
		return nil, apperror.Authorization("you cannot change your own role")
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Dependency("failed to fetch user", err)
	}

	user.Role = role
	user.UpdatedBy = actorID.String()
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperror.Dependency("failed to update user", err)
	}

	return user, nil
}

// DeleteUser removes a user account. Self-deletion is forbidden.
func (s *userService) DeleteUser(targetID, actorID uuid.UUID) error {
	if targetID == actorID {
		return apperror.Authorization("you cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Dependency("failed to fetch user", err)
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		return apperror.Dependency("failed to delete user", err)
	}

	return nil
}
