package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/auth"
	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserService struct {
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	logger      *zap.SugaredLogger
}

func NewUserService(users repo.UserRepository, restaurants repo.RestaurantRepository, logger *zap.SugaredLogger) *UserService {
	return &UserService{
		users:       users,
		restaurants: restaurants,
		logger:      logger,
	}
}

type SubadminInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	RestaurantID string `json:"restaurantID" validate:"required"`
}

type SubadminUpdate struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Password     *string `json:"password" validate:"omitempty,min=6"`
	RestaurantID *string `json:"restaurantID"`
	IsActive     *bool   `json:"isActive"`
}

func (s *UserService) CreateSubadmin(ctx context.Context, in SubadminInput) (*domain.User, error) {
	rid, err := s.restaurantRef(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, invalid(err.Error())
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleSubadmin,
		RestaurantID: &rid,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("subadmin created", "user_id", user.ID.Hex(), "restaurant_id", rid.Hex())

	return user, nil
}

func (s *UserService) ListSubadmins(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleSubadmin)
}

func (s *UserService) GetSubadmin(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleSubadmin {
		return nil, fmt.Errorf("subadmin %w", domain.ErrNotFound)
	}
	return user, nil
}

func (s *UserService) UpdateSubadmin(ctx context.Context, id primitive.ObjectID, in SubadminUpdate) (*domain.User, error) {
	user, err := s.GetSubadmin(ctx, id)
	if err != nil {
		return nil, err
	}

	set(&user.Name, in.Name)
	set(&user.Email, in.Email)
	set(&user.IsActive, in.IsActive)

	if in.RestaurantID != nil {
		rid, err := s.restaurantRef(ctx, *in.RestaurantID)
		if err != nil {
			return nil, err
		}
		user.RestaurantID = &rid
	}

	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, invalid(err.Error())
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteSubadmin(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetSubadmin(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("subadmin deleted", "user_id", id.Hex())

	return nil
}

func (s *UserService) restaurantRef(ctx context.Context, hex string) (primitive.ObjectID, error) {
	rid, err := ParseID("restaurantID", hex)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.restaurants.GetByID(ctx, rid); err != nil {
		return primitive.NilObjectID, err
	}
	return rid, nil
}
