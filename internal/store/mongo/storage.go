package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collRestaurants      = "restaurants"
	collMenuItems        = "menu_items"
	collCategories       = "categories"
	collQRCodes          = "qr_codes"
	collOrders           = "orders"
	collOrderStatusAudit = "order_status_audit"
	collUsers            = "users"
	collBanners          = "banners"
	collImportTasks      = "menu_import_tasks"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

type Storage struct {
	client       *mongo.Client
	database     *mongo.Database
	config       Config
	transactions bool
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	var hello helloResult
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return nil, fmt.Errorf("failed to read mongodb topology: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:       client,
		database:     database,
		config:       cfg,
		transactions: hello.supportsTransactions(),
	}, nil
}

// helloResult is the part of the hello command reply that tells a standalone
// server apart from a replica set member or mongos router.
type helloResult struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

func (h helloResult) supportsTransactions() bool {
	return h.SetName != "" || h.Msg == "isdbgrid"
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

// SupportsTransactions reports whether the deployment is a replica set or a
// sharded cluster.
func (s *Storage) SupportsTransactions() bool {
	return s.transactions
}

// WithTransaction runs fn inside a session transaction. A standalone server
// has no transactions, so fn runs directly there.
func (s *Storage) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collMenuItems: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "is_available", Value: 1}}},
		},
		collCategories: {
			{
				Keys:    bson.D{{Key: "restaurant_id", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		collQRCodes: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}}},
		},
		collOrders: {
			{
				Keys:    bson.D{{Key: "order_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collOrderStatusAudit: {
			{Keys: bson.D{{Key: "order_id", Value: 1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		},
		collUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		collBanners: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "display_order", Value: 1}}},
		},
		collImportTasks: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := s.database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}

	return nil
}

// translate maps driver errors onto domain errors so callers can use errors.Is.
func translate(entity, op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %w", entity, domain.ErrConflict)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}
}
