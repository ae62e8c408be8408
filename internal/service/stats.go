package service

import (
	"context"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type StatsService struct {
	restaurants repo.RestaurantRepository
	users       repo.UserRepository
	orders      repo.OrderRepository
	items       repo.MenuItemRepository
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewStatsService(
	restaurants repo.RestaurantRepository,
	users repo.UserRepository,
	orders repo.OrderRepository,
	items repo.MenuItemRepository,
	logger *zap.SugaredLogger,
) *StatsService {
	return &StatsService{
		restaurants: restaurants,
		users:       users,
		orders:      orders,
		items:       items,
		logger:      logger,
		now:         time.Now,
	}
}

type AdminStats struct {
	Restaurants   int64   `json:"restaurants"`
	Subadmins     int64   `json:"subadmins"`
	Orders        int64   `json:"orders"`
	PendingOrders int64   `json:"pendingOrders"`
	Revenue       float64 `json:"revenue"`
}

func (s *StatsService) Admin(ctx context.Context) (*AdminStats, error) {
	restaurants, err := s.restaurants.Count(ctx)
	if err != nil {
		return nil, err
	}

	subadmins, err := s.users.CountByRole(ctx, domain.RoleSubadmin)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.Stats(ctx, nil, time.Time{})
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		Restaurants:   restaurants,
		Subadmins:     subadmins,
		Orders:        orders.Orders,
		PendingOrders: orders.PendingOrders,
		Revenue:       orders.Revenue,
	}, nil
}

type Dashboard struct {
	OrdersToday   int64   `json:"ordersToday"`
	RevenueToday  float64 `json:"revenueToday"`
	PendingOrders int64   `json:"pendingOrders"`
	MenuItems     int64   `json:"menuItems"`
}

// Dashboard summarises a restaurant's day, counted from local midnight.
func (s *StatsService) Dashboard(ctx context.Context, restaurantID primitive.ObjectID) (*Dashboard, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.orders.Stats(ctx, &restaurantID, midnight)
	if err != nil {
		return nil, err
	}

	all, err := s.orders.Stats(ctx, &restaurantID, time.Time{})
	if err != nil {
		return nil, err
	}

	items, err := s.items.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		OrdersToday:   today.Orders,
		RevenueToday:  today.Revenue,
		PendingOrders: all.PendingOrders,
		MenuItems:     items,
	}, nil
}
