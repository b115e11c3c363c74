package services

import (
	"errors"
	"fmt"
	"time"

	"giftcerts/internal/apperr"
	"giftcerts/internal/models"
	"giftcerts/internal/repositories"
	"giftcerts/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegisterUser validates username and password against the user rules
// (aggregating both failures), hashes the password and persists the user
// with the default role. A username collision surfaces as a duplicated-name
// validation error.
func (s *AuthService) RegisterUser(username, password string) (*models.User, error) {
	rules := validation.UserRules
	violations := apperr.Violations{}
	if !validation.MatchesPattern(username, rules.UsernamePattern) {
		violations.Add(apperr.CodeInvalidUserName, username)
	}
	if !passwordValid(password, rules) {
		// The offending value is never echoed for passwords.
		violations.Add(apperr.CodeInvalidUserPassword, "")
	}
	if !violations.Empty() {
		return nil, apperr.NewValidationMap(violations)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role, err := s.userRepo.EnsureRole(models.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		RoleID:   role.ID,
		Role:     *role,
	}
	if err := s.userRepo.Create(user); err != nil {
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			return nil, conflict.AsValidation()
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func passwordValid(password string, rules validation.UserRuleSet) bool {
	return len(password) >= rules.PasswordMinLen &&
		len(password) <= rules.PasswordMaxLen &&
		validation.MatchesPattern(password, rules.PasswordLetter) &&
		validation.MatchesPattern(password, rules.PasswordDigit)
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		// Do not reveal whether the username exists.
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role.Name,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		logrus.Debugf("token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
