package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories repo.CategoryRepository
	logger     *zap.SugaredLogger
}

func NewCategoryService(categories repo.CategoryRepository, logger *zap.SugaredLogger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

type CategoryInput struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=60"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive"`
}

func (s *CategoryService) List(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Category, error) {
	return s.categories.ListByRestaurant(ctx, restaurantID, false)
}

func (s *CategoryService) PublicList(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Category, error) {
	return s.categories.ListByRestaurant(ctx, restaurantID, true)
}

func (s *CategoryService) Get(ctx context.Context, restaurantID, id primitive.ObjectID) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.RestaurantID != restaurantID {
		return nil, fmt.Errorf("category %w", domain.ErrNotFound)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, restaurantID primitive.ObjectID, in CategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	applyCategory(category, in)

	if category.Name == "" {
		return nil, invalid("name is required")
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Infow("category created", "restaurant_id", restaurantID.Hex(), "name", category.Name)

	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, restaurantID, id primitive.ObjectID, in CategoryInput) (*domain.Category, error) {
	category, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	applyCategory(category, in)
	if category.Name == "" {
		return nil, invalid("name is required")
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, restaurantID, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func applyCategory(c *domain.Category, in CategoryInput) {
	set(&c.Name, in.Name)
	set(&c.Description, in.Description)
	set(&c.DisplayOrder, in.DisplayOrder)
	set(&c.IsActive, in.IsActive)
	c.Name = strings.TrimSpace(c.Name)
}
