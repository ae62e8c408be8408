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

type MenuItemRepository struct {
	collection *mongo.Collection
}

func NewMenuItemRepository(db *mongo.Database) *MenuItemRepository {
	return &MenuItemRepository{
		collection: db.Collection(collMenuItems),
	}
}

func (r *MenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return translate("menu item", "create", err)
	}

	return nil
}

func (r *MenuItemRepository) CreateMany(ctx context.Context, items []domain.MenuItem) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, len(items))
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		docs[i] = items[i]
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create menu items: %w", err)
	}

	return nil
}

func (r *MenuItemRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var item domain.MenuItem
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, translate("menu item", "get", err)
	}

	return &item, nil
}

func (r *MenuItemRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []domain.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}

	return items, nil
}

func (r *MenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID, availableOnly bool) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"restaurant_id": restaurantID}
	if availableOnly {
		filter["is_available"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []domain.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}

	return items, nil
}

func (r *MenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	item.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return translate("menu item", "update", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("menu item %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuItemRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"is_available": available,
			"updated_at":   time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update menu item availability: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("menu item %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("menu item %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MenuItemRepository) CountByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	return n, nil
}
