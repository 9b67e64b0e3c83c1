package service

import (
	"errors"

	"go-suministros-api/internal/model"
	"go-suministros-api/internal/repository"
	"go-suministros-api/pkg/jwt"

	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password, so a failed login never reveals which part was wrong.
	ErrInvalidCredentials = errors.New("login failed, check your username and password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNotAuthorized      = errors.New("you do not have permission to perform this action")
)

type AuthService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewAuthService(userRepo repository.UserRepository, db *gorm.DB) AuthService {
	return &authService{userRepo: userRepo, db: db}
}

// Register creates a new account. The very first account ever registered
// is promoted to admin; everyone after that starts as a customer.
func (s *authService) Register(username, password string) (*model.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	existing, _ := s.userRepo.FindByUsername(username)
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user := &model.User{
		Username: username,
		Role:     model.RoleCustomer,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	// Count and insert inside one transaction so two simultaneous first
	// registrations cannot both see an empty table and both end up admin.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Role = model.RoleAdmin
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}
