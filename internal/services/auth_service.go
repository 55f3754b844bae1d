package services

import (
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Sign-in failures the handler maps to distinct responses: an unknown
// identity is a 400, a bad password or disabled account a 401.
var (
	ErrUnknownIdentity = errors.New("invalid username or email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInactiveUser    = errors.New("user account is disabled")
)

// AuthService handles sign-in and token validation.
type AuthService struct {
	userRepo repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Login authenticates by username or email and returns the matched user and
// a signed access token. Exactly one of username/email is expected; the
// handler enforces that shape up front.
func (s *AuthService) Login(username, email, password string) (*models.User, string, error) {
	var user *models.User
	var err error

	if username != "" {
		user, err = s.userRepo.GetByUsername(username)
	} else {
		user, err = s.userRepo.GetByEmail(email)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrUnknownIdentity
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Active {
		return nil, "", ErrInactiveUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, signed, nil
}

// ValidateToken parses and verifies an access token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
