package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/agrigrow/pkg/config"
	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Principal is the authenticated caller carried by a bearer token.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies bearer tokens for accounts stored in
// MySQL. Profiles are cached when a cache is configured.
type AuthService struct {
	users  UserStore
	cache  ProfileCache
	cfg    config.AuthConfig
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, cache ProfileCache, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, cache: cache, cfg: cfg, logger: logger, now: time.Now}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.UserProfile, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, NewMissingFields("All fields are required")
	}
	if len(password) < minPasswordLength {
		return nil, NewInvalidInputf("Password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewStoreFailure("Error during signup", err)
	}

	role := models.RoleCustomer
	if s.cfg.IsAdminEmail(email) {
		role = models.RoleAdmin
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	err = s.users.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, NewConflict("User already exists")
	}
	if err != nil {
		return nil, NewStoreFailure("Error during signup", err)
	}

	s.logger.Info("User signed up", zap.String("user_id", user.ID), zap.String("role", role))
	return user.Profile(), nil
}

// Login checks the password and returns a signed HS256 token with the
// profile it was issued for.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	if email == "" || password == "" {
		return "", nil, NewMissingFields("All fields are required")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return "", nil, NewStoreFailure("Error during login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewUnauthorized("Invalid credentials")
	}

	now := s.now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, NewStoreFailure("Error during login", err)
	}
	return token, user.Profile(), nil
}

// ParseToken verifies a bearer token and returns its principal.
func (s *AuthService) ParseToken(token string) (Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Principal{}, &Error{Kind: KindUnauthorized, Message: "Invalid or expired token", Err: err}
	}
	if claims.Subject == "" {
		return Principal{}, NewUnauthorized("Invalid or expired token")
	}
	return Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

// Profile returns the account for email without its password hash.
func (s *AuthService) Profile(ctx context.Context, email string) (*models.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.cache != nil {
		if p, err := s.cache.GetProfile(ctx, email); err == nil {
			return p, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Failed to read profile cache", zap.Error(err))
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("User not found")
	}
	if err != nil {
		return nil, NewStoreFailure("Error fetching user profile", err)
	}

	profile := user.Profile()
	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, profile); err != nil {
			s.logger.Warn("Failed to cache profile", zap.Error(err))
		}
	}
	return profile, nil
}

// Authorize rejects callers naming a user other than themselves. An empty
// userID means the caller's own.
func Authorize(p Principal, userID string) error {
	if userID != "" && userID != p.UserID {
		return NewForbidden(fmt.Sprintf("Not allowed to act for user %s.", userID))
	}
	return nil
}
