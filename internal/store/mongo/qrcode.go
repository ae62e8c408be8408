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

type QRCodeRepository struct {
	collection *mongo.Collection
}

func NewQRCodeRepository(db *mongo.Database) *QRCodeRepository {
	return &QRCodeRepository{
		collection: db.Collection(collQRCodes),
	}
}

func (r *QRCodeRepository) Create(ctx context.Context, qr *domain.QRCode) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if qr.ID.IsZero() {
		qr.ID = primitive.NewObjectID()
	}
	qr.CreatedAt = time.Now()
	qr.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, qr); err != nil {
		return translate("qr code", "create", err)
	}

	return nil
}

func (r *QRCodeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.QRCode, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var qr domain.QRCode
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&qr); err != nil {
		return nil, translate("qr code", "get", err)
	}

	return &qr, nil
}

func (r *QRCodeRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.QRCode, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "table_number", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	defer cursor.Close(ctx)

	codes := []domain.QRCode{}
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, fmt.Errorf("failed to decode qr codes: %w", err)
	}

	return codes, nil
}

func (r *QRCodeRepository) Update(ctx context.Context, qr *domain.QRCode) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	qr.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": qr.ID}, qr)
	if err != nil {
		return translate("qr code", "update", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("qr code %w", domain.ErrNotFound)
	}

	return nil
}

func (r *QRCodeRepository) RecordScan(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$inc": bson.M{"scan_count": 1},
		"$set": bson.M{"last_scanned_at": now, "updated_at": now},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to record qr scan: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("qr code %w", domain.ErrNotFound)
	}

	return nil
}

func (r *QRCodeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete qr code: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("qr code %w", domain.ErrNotFound)
	}

	return nil
}
