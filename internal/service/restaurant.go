package service

import (
	"context"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RestaurantService struct {
	restaurants repo.RestaurantRepository
	logger      *zap.SugaredLogger
}

func NewRestaurantService(restaurants repo.RestaurantRepository, logger *zap.SugaredLogger) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		logger:      logger,
	}
}

// RestaurantInput carries writable restaurant fields. Nil pointers leave the
// stored value untouched on update.
type RestaurantInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Logo        *string `json:"logo" validate:"omitempty,url"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,url"`
	Cuisine     *string `json:"cuisine" validate:"omitempty,max=100"`
	Currency    *string `json:"currency" validate:"omitempty,len=3"`
	IsActive    *bool   `json:"isActive"`
}

func (in RestaurantInput) apply(r *domain.Restaurant) {
	set(&r.Name, in.Name)
	set(&r.Description, in.Description)
	set(&r.Address, in.Address)
	set(&r.Phone, in.Phone)
	set(&r.Email, in.Email)
	set(&r.Logo, in.Logo)
	set(&r.CoverImage, in.CoverImage)
	set(&r.Cuisine, in.Cuisine)
	set(&r.Currency, in.Currency)
	set(&r.IsActive, in.IsActive)
	r.Name = strings.TrimSpace(r.Name)
	r.Currency = strings.ToUpper(r.Currency)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant := &domain.Restaurant{
		Currency: domain.DefaultCurrency,
		IsActive: true,
	}
	in.apply(restaurant)

	if restaurant.Name == "" {
		return nil, invalid("name is required")
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	s.logger.Infow("restaurant created", "restaurant_id", restaurant.ID.Hex(), "name", restaurant.Name)

	return restaurant, nil
}

func (s *RestaurantService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	return s.restaurants.GetByID(ctx, id)
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.List(ctx)
}

func (s *RestaurantService) Update(ctx context.Context, id primitive.ObjectID, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(restaurant)
	if restaurant.Name == "" {
		return nil, invalid("name is required")
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.restaurants.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("restaurant deleted", "restaurant_id", id.Hex())

	return nil
}
