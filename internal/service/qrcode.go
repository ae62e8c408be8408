package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultQRImageSize = 512
	minQRImageSize     = 128
	maxQRImageSize     = 2048
)

type QRCodeService struct {
	qrCodes     repo.QRCodeRepository
	restaurants repo.RestaurantRepository
	frontendURL string
	logger      *zap.SugaredLogger
}

func NewQRCodeService(
	qrCodes repo.QRCodeRepository,
	restaurants repo.RestaurantRepository,
	frontendURL string,
	logger *zap.SugaredLogger,
) *QRCodeService {
	return &QRCodeService{
		qrCodes:     qrCodes,
		restaurants: restaurants,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

type QRCodeInput struct {
	TableNumber *string `json:"tableNumber" validate:"omitempty,min=1,max=20"`
	Label       *string `json:"label" validate:"omitempty,max=60"`
	IsActive    *bool   `json:"isActive"`
}

// QRCodeView adds the guest menu URL to a stored code.
type QRCodeView struct {
	domain.QRCode
	MenuURL string `json:"menuURL"`
}

func (s *QRCodeService) view(qr domain.QRCode) QRCodeView {
	return QRCodeView{QRCode: qr, MenuURL: s.MenuURL(qr)}
}

// MenuURL is the link encoded in the printed code.
func (s *QRCodeService) MenuURL(qr domain.QRCode) string {
	return fmt.Sprintf("%s/menu/%s/%s", s.frontendURL, qr.RestaurantID.Hex(), qr.ID.Hex())
}

func (s *QRCodeService) List(ctx context.Context, restaurantID primitive.ObjectID) ([]QRCodeView, error) {
	codes, err := s.qrCodes.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	views := make([]QRCodeView, 0, len(codes))
	for _, qr := range codes {
		views = append(views, s.view(qr))
	}
	return views, nil
}

func (s *QRCodeService) get(ctx context.Context, restaurantID, id primitive.ObjectID) (*domain.QRCode, error) {
	qr, err := s.qrCodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qr.RestaurantID != restaurantID {
		return nil, fmt.Errorf("qr code %w", domain.ErrNotFound)
	}
	return qr, nil
}

func (s *QRCodeService) Get(ctx context.Context, restaurantID, id primitive.ObjectID) (*QRCodeView, error) {
	qr, err := s.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	v := s.view(*qr)
	return &v, nil
}

func (s *QRCodeService) Create(ctx context.Context, restaurantID primitive.ObjectID, in QRCodeInput) (*QRCodeView, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	qr := &domain.QRCode{
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	applyQRCode(qr, in)

	if qr.TableNumber == "" {
		return nil, invalid("tableNumber is required")
	}
	if qr.Label == "" {
		qr.Label = "Table " + qr.TableNumber
	}

	if err := s.qrCodes.Create(ctx, qr); err != nil {
		return nil, err
	}

	s.logger.Infow("qr code created", "restaurant_id", restaurantID.Hex(), "qr_id", qr.ID.Hex(), "table", qr.TableNumber)

	v := s.view(*qr)
	return &v, nil
}

func (s *QRCodeService) Update(ctx context.Context, restaurantID, id primitive.ObjectID, in QRCodeInput) (*QRCodeView, error) {
	qr, err := s.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	applyQRCode(qr, in)
	if qr.TableNumber == "" {
		return nil, invalid("tableNumber is required")
	}

	if err := s.qrCodes.Update(ctx, qr); err != nil {
		return nil, err
	}

	v := s.view(*qr)
	return &v, nil
}

func (s *QRCodeService) Delete(ctx context.Context, restaurantID, id primitive.ObjectID) error {
	if _, err := s.get(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.qrCodes.Delete(ctx, id)
}

type ResolvedQRCode struct {
	QRID           primitive.ObjectID `json:"qrID"`
	ResID          primitive.ObjectID `json:"resID"`
	TableNumber    string             `json:"tableNumber"`
	Label          string             `json:"label"`
	RestaurantName string             `json:"restaurantName"`
	MenuURL        string             `json:"menuURL"`
}

// Resolve maps a scanned code to its restaurant for guests.
func (s *QRCodeService) Resolve(ctx context.Context, id primitive.ObjectID) (*ResolvedQRCode, error) {
	qr, err := s.qrCodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !qr.IsActive {
		return nil, fmt.Errorf("qr code %w", domain.ErrNotFound)
	}

	restaurant, err := s.restaurants.GetByID(ctx, qr.RestaurantID)
	if err != nil {
		return nil, err
	}

	return &ResolvedQRCode{
		QRID:           qr.ID,
		ResID:          qr.RestaurantID,
		TableNumber:    qr.TableNumber,
		Label:          qr.Label,
		RestaurantName: restaurant.Name,
		MenuURL:        s.MenuURL(*qr),
	}, nil
}

// Image renders the code as a PNG of size x size pixels.
func (s *QRCodeService) Image(ctx context.Context, restaurantID, id primitive.ObjectID, size int) ([]byte, error) {
	qr, err := s.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if size == 0 {
		size = DefaultQRImageSize
	}
	if size < minQRImageSize || size > maxQRImageSize {
		return nil, invalid(fmt.Sprintf("size must be between %d and %d", minQRImageSize, maxQRImageSize))
	}

	png, err := qrcode.Encode(s.MenuURL(*qr), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return png, nil
}

func applyQRCode(qr *domain.QRCode, in QRCodeInput) {
	set(&qr.TableNumber, in.TableNumber)
	set(&qr.Label, in.Label)
	set(&qr.IsActive, in.IsActive)
	qr.TableNumber = strings.TrimSpace(qr.TableNumber)
}
