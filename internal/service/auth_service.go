package service

import (
	"errors"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/model"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/jwt"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("e-mail ou senha inválidos")
	ErrUserInactive       = errors.New("usuário desativado")
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User: LoginUser{
			ID:       user.ID.String(),
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

// SeedAdmin guarantees the single back-office account exists. It is a
// no-op when the email is already registered.
func SeedAdmin(userRepo repository.UserRepository, email, password, fullName string) error {
	if existing, err := userRepo.FindByEmail(email); err == nil && existing != nil {
		return nil
	}
	user := &model.User{
		Email:    email,
		FullName: fullName,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return userRepo.Create(user)
}
