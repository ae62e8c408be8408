// Package memory keeps every repository in process memory. It backs the
// STORAGE_DRIVER=memory mode and the service and handler tests.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	// tx serializes transactional callbacks; there is no rollback.
	tx sync.Mutex

	Restaurants *RestaurantRepository
	MenuItems   *MenuItemRepository
	Categories  *CategoryRepository
	QRCodes     *QRCodeRepository
	Orders      *OrderRepository
	OrderAudits *OrderStatusAuditRepository
	Users       *UserRepository
	Banners     *BannerRepository
	ImportTasks *ImportTaskRepository
}

func New() *Store {
	return &Store{
		Restaurants: NewRestaurantRepository(),
		MenuItems:   NewMenuItemRepository(),
		Categories:  NewCategoryRepository(),
		QRCodes:     NewQRCodeRepository(),
		Orders:      NewOrderRepository(),
		OrderAudits: NewOrderStatusAuditRepository(),
		Users:       NewUserRepository(),
		Banners:     NewBannerRepository(),
		ImportTasks: NewImportTaskRepository(),
	}
}

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	return fn(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(context.Context) error {
	return nil
}
