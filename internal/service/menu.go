package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MenuService struct {
	items       repo.MenuItemRepository
	categories  repo.CategoryRepository
	restaurants repo.RestaurantRepository
	qrCodes     repo.QRCodeRepository
	logger      *zap.SugaredLogger
}

func NewMenuService(
	items repo.MenuItemRepository,
	categories repo.CategoryRepository,
	restaurants repo.RestaurantRepository,
	qrCodes repo.QRCodeRepository,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		items:       items,
		categories:  categories,
		restaurants: restaurants,
		qrCodes:     qrCodes,
		logger:      logger,
	}
}

type VariantInput struct {
	Name        string  `json:"name" validate:"required,max=60"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsAvailable *bool   `json:"isAvailable"`
}

type MenuItemInput struct {
	Name            *string         `json:"name" validate:"omitempty,min=1,max=120"`
	Description     *string         `json:"description" validate:"omitempty,max=1000"`
	Category        *string         `json:"category" validate:"omitempty,min=1,max=60"`
	Price           *float64        `json:"price" validate:"omitempty,gte=0"`
	Image           *string         `json:"image"`
	IsVegetarian    *bool           `json:"isVegetarian"`
	IsSpecialItem   *bool           `json:"isSpecialItem"`
	IsAvailable     *bool           `json:"isAvailable"`
	TaxPercentage   *float64        `json:"taxPercentage" validate:"omitempty,gte=0,lte=100"`
	PreparationTime *int            `json:"preparationTime" validate:"omitempty,gte=1,lte=240"`
	Variants        *[]VariantInput `json:"variants" validate:"omitempty,dive"`
}

func (in MenuItemInput) apply(item *domain.MenuItem) {
	set(&item.Name, in.Name)
	set(&item.Description, in.Description)
	set(&item.Category, in.Category)
	set(&item.Price, in.Price)
	set(&item.Image, in.Image)
	set(&item.IsVegetarian, in.IsVegetarian)
	set(&item.IsSpecialItem, in.IsSpecialItem)
	set(&item.IsAvailable, in.IsAvailable)
	set(&item.PreparationTime, in.PreparationTime)
	if in.TaxPercentage != nil {
		tax := *in.TaxPercentage
		item.TaxPercentage = &tax
	}
	if in.Variants != nil {
		item.Variants = make([]domain.Variant, 0, len(*in.Variants))
		for _, v := range *in.Variants {
			available := true
			set(&available, v.IsAvailable)
			item.Variants = append(item.Variants, domain.Variant{
				Name:        strings.TrimSpace(v.Name),
				Price:       v.Price,
				IsAvailable: available,
			})
		}
	}
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
}

func validateMenuItem(item *domain.MenuItem) error {
	if item.Name == "" {
		return invalid("name is required")
	}
	if item.Category == "" {
		return invalid("category is required")
	}
	if item.Price < 0 {
		return invalid("price must not be negative")
	}
	if item.Price == 0 && len(item.Variants) == 0 {
		return invalid("price or at least one variant is required")
	}

	seen := make(map[string]bool, len(item.Variants))
	for _, v := range item.Variants {
		if v.Name == "" || strings.Contains(v.Name, ":") {
			return invalid(fmt.Sprintf("invalid variant name %q", v.Name))
		}
		if seen[strings.ToLower(v.Name)] {
			return invalid(fmt.Sprintf("duplicate variant %q", v.Name))
		}
		seen[strings.ToLower(v.Name)] = true
	}
	return nil
}

func (s *MenuService) List(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.MenuItem, error) {
	return s.items.ListByRestaurant(ctx, restaurantID, false)
}

// Get returns an item only when it belongs to restaurantID.
func (s *MenuService) Get(ctx context.Context, restaurantID, id primitive.ObjectID) (*domain.MenuItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, fmt.Errorf("menu item %w", domain.ErrNotFound)
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, restaurantID primitive.ObjectID, in MenuItemInput) (*domain.MenuItem, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		RestaurantID:    restaurantID,
		IsAvailable:     true,
		PreparationTime: domain.DefaultPreparationTime,
		Variants:        []domain.Variant{},
	}
	in.apply(item)

	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Infow("menu item created", "restaurant_id", restaurantID.Hex(), "menu_id", item.ID.Hex())

	return item, nil
}

func (s *MenuService) Update(ctx context.Context, restaurantID, id primitive.ObjectID, in MenuItemInput) (*domain.MenuItem, error) {
	item, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	in.apply(item)
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *MenuService) SetAvailability(ctx context.Context, restaurantID, id primitive.ObjectID, available bool) (*domain.MenuItem, error) {
	item, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.items.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	item.IsAvailable = available

	s.logger.Infow("menu item availability changed", "menu_id", id.Hex(), "available", available)

	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, restaurantID, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

type PublicMenuItem struct {
	MenuID          primitive.ObjectID `json:"menuID"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	BasePrice       float64            `json:"basePrice"`
	Image           string             `json:"image"`
	IsVegetarian    bool               `json:"isVegetarian"`
	IsSpecialItem   bool               `json:"isSpecialItem"`
	IsAvailable     bool               `json:"isAvailable"`
	TaxPercentage   *float64           `json:"taxPercentage,omitempty"`
	PreparationTime int                `json:"preparationTime"`
	Variants        []domain.Variant   `json:"variants"`
}

type PublicQRCode struct {
	QRID        primitive.ObjectID `json:"qrID"`
	TableNumber string             `json:"tableNumber"`
	Label       string             `json:"label"`
}

type PublicMenu struct {
	Restaurant *domain.Restaurant          `json:"restaurant"`
	QRCode     PublicQRCode                `json:"qrCode"`
	Menu       map[string][]PublicMenuItem `json:"menu"`
	Categories []string                    `json:"categories"`
}

// PublicMenu is what a guest sees after scanning a table's QR code: available
// items grouped by category, with unavailable variants hidden.
func (s *MenuService) PublicMenu(ctx context.Context, restaurantID, qrID primitive.ObjectID) (*PublicMenu, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, fmt.Errorf("restaurant %w", domain.ErrNotFound)
	}

	qr, err := s.activeQRCode(ctx, restaurantID, qrID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByRestaurant(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]bool)
	order := make(map[string]int)
	for i, c := range categories {
		if !c.IsActive {
			hidden[c.Name] = true
			continue
		}
		order[c.Name] = i
	}

	menu := make(map[string][]PublicMenuItem)
	for _, item := range items {
		if hidden[item.Category] {
			continue
		}
		menu[item.Category] = append(menu[item.Category], PublicMenuItem{
			MenuID:          item.ID,
			Name:            item.Name,
			Description:     item.Description,
			BasePrice:       item.Price,
			Image:           item.Image,
			IsVegetarian:    item.IsVegetarian,
			IsSpecialItem:   item.IsSpecialItem,
			IsAvailable:     item.IsAvailable,
			TaxPercentage:   item.TaxPercentage,
			PreparationTime: item.PreparationTime,
			Variants:        item.AvailableVariants(),
		})
	}

	names := make([]string, 0, len(menu))
	for name := range menu {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := order[names[i]]
		oj, jok := order[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})

	if err := s.qrCodes.RecordScan(ctx, qr.ID); err != nil {
		s.logger.Warnw("failed to record qr scan", "qr_id", qr.ID.Hex(), "error", err)
	}

	return &PublicMenu{
		Restaurant: restaurant,
		QRCode: PublicQRCode{
			QRID:        qr.ID,
			TableNumber: qr.TableNumber,
			Label:       qr.Label,
		},
		Menu:       menu,
		Categories: names,
	}, nil
}

func (s *MenuService) activeQRCode(ctx context.Context, restaurantID, qrID primitive.ObjectID) (*domain.QRCode, error) {
	qr, err := s.qrCodes.GetByID(ctx, qrID)
	if err != nil {
		return nil, err
	}
	if qr.RestaurantID != restaurantID || !qr.IsActive {
		return nil, fmt.Errorf("qr code %w", domain.ErrNotFound)
	}
	return qr, nil
}
