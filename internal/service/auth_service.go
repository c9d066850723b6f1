package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/models/response"
	"pdam-be-svc/internal/repository"
	"pdam-be-svc/pkg/logger"
	"pdam-be-svc/pkg/utils"
)

// RegisterInput carries the fields required to create a new user
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// AuthService interface defines authentication operations
type AuthService interface {
	Register(input RegisterInput) (*response.UserProfileResponse, error)
	Login(email, password string) (*response.LoginResponse, error)
	GetProfile(userID uint) (*response.UserProfileResponse, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, logger *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register hashes the password and persists a new user
func (s *authService) Register(input RegisterInput) (*response.UserProfileResponse, error) {
	count, err := s.userRepo.CountByEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		s.logger.WithField("email", input.Email).Warn("Registration rejected, email already in use")
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RolePelanggan
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Address:  input.Address,
		Role:     role,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index catches the race the pre-check cannot
		return nil, ErrDuplicateEmail
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}).Info("User registered successfully")

	return publicProfile(user), nil
}

// Login verifies credentials and issues a signed token carrying id and role
func (s *authService) Login(email, password string) (*response.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		s.logger.WithField("email", email).Warn("Login failed, user not found")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("Login failed, wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in successfully")

	return &response.LoginResponse{
		Token: token,
		User:  *publicProfile(user),
	}, nil
}

// GetProfile returns the public profile fields for a user
func (s *authService) GetProfile(userID uint) (*response.UserProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return publicProfile(user), nil
}

// publicProfile strips the password hash from a user record
func publicProfile(user *models.User) *response.UserProfileResponse {
	return &response.UserProfileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    user.Role,
	}
}
