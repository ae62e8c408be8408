package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"github.com/Zyntrix-company/Qruzine/internal/store/memory"
	"github.com/Zyntrix-company/Qruzine/internal/store/mongo"
	"go.uber.org/zap"
)

type repositories struct {
	restaurants repo.RestaurantRepository
	menuItems   repo.MenuItemRepository
	categories  repo.CategoryRepository
	qrCodes     repo.QRCodeRepository
	orders      repo.OrderRepository
	orderAudits repo.OrderStatusAuditRepository
	users       repo.UserRepository
	banners     repo.BannerRepository
	importTasks repo.ImportTaskRepository
	tx          repo.Transactor
}

func memoryRepositories(store *memory.Store) repositories {
	return repositories{
		restaurants: store.Restaurants,
		menuItems:   store.MenuItems,
		categories:  store.Categories,
		qrCodes:     store.QRCodes,
		orders:      store.Orders,
		orderAudits: store.OrderAudits,
		users:       store.Users,
		banners:     store.Banners,
		importTasks: store.ImportTasks,
		tx:          store,
	}
}

func mongoRepositories(storage *mongo.Storage) repositories {
	db := storage.Database()
	return repositories{
		restaurants: mongo.NewRestaurantRepository(db),
		menuItems:   mongo.NewMenuItemRepository(db),
		categories:  mongo.NewCategoryRepository(db),
		qrCodes:     mongo.NewQRCodeRepository(db),
		orders:      mongo.NewOrderRepository(db),
		orderAudits: mongo.NewOrderStatusAuditRepository(db),
		users:       mongo.NewUserRepository(db),
		banners:     mongo.NewBannerRepository(db),
		importTasks: mongo.NewImportTaskRepository(db),
		tx:          storage,
	}
}

// openStorage connects the configured backend and returns its repositories.
func openStorage(cfg config, logger *zap.SugaredLogger) (repositories, database, error) {
	if cfg.storageDriver == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.New()
		return memoryRepositories(store), store, nil
	}

	storage, err := mongo.New(mongo.Config{
		URI:      cfg.mongo.URI,
		Database: cfg.mongo.Database,
		Timeout:  cfg.mongo.Timeout,
	})
	if err != nil {
		return repositories{}, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB")
	if !storage.SupportsTransactions() {
		logger.Warn("MongoDB is a standalone server, multi-document writes run without transactions")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := storage.CreateIndexes(ctx); err != nil {
		logger.Warnw("failed to create indexes", "error", err)
	} else {
		logger.Info("MongoDB indexes created successfully")
	}

	return mongoRepositories(storage), storage, nil
}
