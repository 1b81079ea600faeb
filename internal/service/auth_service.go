package service

import (
	"errors"

	"stocktrack-backend/internal/apperr"
	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/repository"
	"stocktrack-backend/pkg/jwt"
	"stocktrack-backend/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Register(req *RegisterRequest) (*model.User, error)
	GetUser(id uuid.UUID) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	existing, _ := s.users.FindByEmail(req.Email)
	if existing != nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(user); err != nil {
		return nil, translateDBErr(err, "User with this email already exists")
	}
	return user, nil
}

func (s *authService) GetUser(id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
