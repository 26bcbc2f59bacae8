// internal/domain/user/service.go
package user

import (
	"errors"
	"strings"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the identity and bearer token returned on
// login and registration
type AuthResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// ProfileResponse represents a user profile without credentials
type ProfileResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	// Check if user already exists
	var existingUser User
	result := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&existingUser)
	if result.Error == nil {
		return nil, apperror.BadRequest("User already exists")
	}

	// Hash password
	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	// Create new user
	user := User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		IsAdmin:  false,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperror.Internal(err)
	}

	return s.authResponse(&user)
}

// Login authenticates a user
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	// Find user by email
	var user User
	result := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&user)
	if result.Error != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	// Verify password
	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	return s.authResponse(&user)
}

// GetProfile retrieves a user profile by ID
func (s *Service) GetProfile(userID uint) (*ProfileResponse, error) {
	var user User
	result := s.db.Where("id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(result.Error)
	}

	return &ProfileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

func (s *Service) authResponse(user *User) (*AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}
