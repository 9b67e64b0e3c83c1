package service

import (
	"errors"
	"fmt"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"
	"go-suministros-api/pkg/validator"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfDemotion = errors.New("you cannot remove your own admin role")
)

type UserService interface {
	GetAllUsers(actor *model.User) ([]model.User, error)
	GetUserByID(actor *model.User, id uint) (*model.User, error)
	UpdateUser(actor *model.User, id uint, req *UpdateUserRequest) (*model.User, error)
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin customer"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers(actor *model.User) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.userRepo.FindAll()
}

func (s *userService) GetUserByID(actor *model.User, id uint) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser renames a user and/or changes their role. An admin editing
// their own record cannot drop the admin role.
func (s *userService) UpdateUser(actor *model.User, id uint, req *UpdateUserRequest) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if actor.ID == user.ID && user.Role == model.RoleAdmin && req.Role != model.RoleAdmin {
		return nil, ErrSelfDemotion
	}

	if req.Username != user.Username {
		existing, _ := s.userRepo.FindByUsername(req.Username)
		if existing != nil && existing.ID != user.ID {
			return nil, ErrUsernameTaken
		}
	}

	user.Username = req.Username
	user.Role = req.Role

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
