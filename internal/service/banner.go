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

type BannerService struct {
	banners repo.BannerRepository
	logger  *zap.SugaredLogger
}

func NewBannerService(banners repo.BannerRepository, logger *zap.SugaredLogger) *BannerService {
	return &BannerService{
		banners: banners,
		logger:  logger,
	}
}

type BannerInput struct {
	Title        *string `json:"title" validate:"omitempty,max=120"`
	Image        *string `json:"image" validate:"omitempty,url"`
	Link         *string `json:"link" validate:"omitempty,max=500"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive"`
}

func (s *BannerService) List(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Banner, error) {
	return s.banners.ListByRestaurant(ctx, restaurantID, false)
}

func (s *BannerService) PublicList(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Banner, error) {
	return s.banners.ListByRestaurant(ctx, restaurantID, true)
}

func (s *BannerService) Get(ctx context.Context, restaurantID, id primitive.ObjectID) (*domain.Banner, error) {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if banner.RestaurantID != restaurantID {
		return nil, fmt.Errorf("banner %w", domain.ErrNotFound)
	}
	return banner, nil
}

func (s *BannerService) Create(ctx context.Context, restaurantID primitive.ObjectID, in BannerInput) (*domain.Banner, error) {
	banner := &domain.Banner{
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	applyBanner(banner, in)

	if banner.Image == "" {
		return nil, invalid("image is required")
	}

	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, err
	}

	s.logger.Infow("banner created", "restaurant_id", restaurantID.Hex(), "banner_id", banner.ID.Hex())

	return banner, nil
}

func (s *BannerService) Update(ctx context.Context, restaurantID, id primitive.ObjectID, in BannerInput) (*domain.Banner, error) {
	banner, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	applyBanner(banner, in)
	if banner.Image == "" {
		return nil, invalid("image is required")
	}

	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, err
	}

	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, restaurantID, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.banners.Delete(ctx, id)
}

func applyBanner(b *domain.Banner, in BannerInput) {
	set(&b.Title, in.Title)
	set(&b.Image, in.Image)
	set(&b.Link, in.Link)
	set(&b.DisplayOrder, in.DisplayOrder)
	set(&b.IsActive, in.IsActive)
	b.Title = strings.TrimSpace(b.Title)
}
