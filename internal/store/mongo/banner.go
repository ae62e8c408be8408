package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BannerRepository struct {
	collection *mongo.Collection
}

func NewBannerRepository(db *mongo.Database) *BannerRepository {
	return &BannerRepository{
		collection: db.Collection(collBanners),
	}
}

func (r *BannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if banner.ID.IsZero() {
		banner.ID = primitive.NewObjectID()
	}
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, banner); err != nil {
		return translate("banner", "create", err)
	}

	return nil
}

func (r *BannerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var banner domain.Banner
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&banner); err != nil {
		return nil, translate("banner", "get", err)
	}

	return &banner, nil
}

func (r *BannerRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, activeOnly bool) ([]domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"restaurant_id": restaurantID}
	if activeOnly {
		filter["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer cursor.Close(ctx)

	banners := []domain.Banner{}
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}

	return banners, nil
}

func (r *BannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	banner.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": banner.ID}, banner)
	if err != nil {
		return translate("banner", "update", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("banner %w", domain.ErrNotFound)
	}

	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("banner %w", domain.ErrNotFound)
	}

	return nil
}
