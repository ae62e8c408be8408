package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var errBadCredentials = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)

type AuthService struct {
	users  repo.UserRepository
	jwt    *auth.JWTManager
	logger *zap.SugaredLogger
}

func NewAuthService(users repo.UserRepository, jwt *auth.JWTManager, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Warnw("failed login", "email", user.Email)
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrForbidden)
	}

	restaurantID := ""
	if user.RestaurantID != nil {
		restaurantID = user.RestaurantID.Hex()
	}

	token, err := s.jwt.GenerateToken(user.ID.Hex(), user.Role, restaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warnw("failed to record last login", "user_id", user.ID.Hex(), "error", err)
	}

	s.logger.Infow("user logged in", "user_id", user.ID.Hex(), "role", user.Role)

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwt.TTL()),
		User:      user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Authenticate checks token claims against the stored account and returns
// claims carrying the account's current role and restaurant.
func (s *AuthService) Authenticate(ctx context.Context, claims *auth.Claims) (*auth.Claims, error) {
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id: %w", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("account no longer exists: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrForbidden)
	}

	current := *claims
	current.Role = user.Role
	current.RestaurantID = ""
	if user.RestaurantID != nil {
		current.RestaurantID = user.RestaurantID.Hex()
	}

	return &current, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.CheckPassword(user.PasswordHash, current); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return invalid(err.Error())
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Infow("password changed", "user_id", user.ID.Hex())

	return nil
}

// SeedAdmin creates the first admin account when none exists yet.
func (s *AuthService) SeedAdmin(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	s.logger.Infow("admin account seeded", "email", admin.Email)

	return nil
}
