package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hamid-2027/seatMeCombine/internal/config"
	"github.com/Hamid-2027/seatMeCombine/pkg/jwt"
)

// AuthService authenticates the dashboard admin against the configured
// credentials and issues access tokens
type AuthService struct {
	admin      config.AdminConfig
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(admin config.AdminConfig, jwtService *jwt.Service, logger *logrus.Logger) *AuthService {
	return &AuthService{
		admin:      admin,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginResponse carries the issued token
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login verifies the admin credentials and returns an access token. The
// error message never reveals which of the two fields was wrong.
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		return nil, fmt.Errorf("admin login is not configured")
	}
	if email != s.admin.Email {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(email, "admin")
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.WithField("email", email).Info("Admin logged in")
	return &LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtService.AccessTokenExpiry().Seconds()),
	}, nil
}
