package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// readRange covers the ten menu columns:
// Category | Name | Description | Price | Variants | Vegetarian | Special | Tax % | Image | Prep time
const readRange = "A:J"

const (
	colCategory = iota
	colName
	colDescription
	colPrice
	colVariants
	colVegetarian
	colSpecial
	colTax
	colImage
	colPrepTime
)

var ErrEmptySheet = errors.New("no data found in spreadsheet")

type GoogleSheetsParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsJSON []byte
}

// ConfigFromFile reads service account credentials from path.
func ConfigFromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read google credentials: %w", err)
	}
	return Config{CredentialsJSON: raw}, nil
}

func New(ctx context.Context, cfg Config) (*GoogleSheetsParser, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(cfg.CredentialsJSON),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSheetsParser{
		service: service,
	}, nil
}

func (p *GoogleSheetsParser) ParseMenu(ctx context.Context, spreadsheetID string) ([]domain.MenuItem, error) {
	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	return ParseRows(resp.Values)
}

// ParseRows turns sheet rows into menu items. The first row is a header. A
// row with only its first cell set starts a category block used by following
// rows that leave Category empty.
func ParseRows(rows [][]interface{}) ([]domain.MenuItem, error) {
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	items := []domain.MenuItem{}
	var currentCategory string

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		if cell(row, colCategory) != "" && cell(row, colName) == "" {
			currentCategory = cell(row, colCategory)
			continue
		}

		name := cell(row, colName)
		if name == "" {
			continue
		}

		item := domain.MenuItem{
			Name:            name,
			Category:        cell(row, colCategory),
			Description:     cell(row, colDescription),
			Image:           cell(row, colImage),
			IsVegetarian:    truthy(cell(row, colVegetarian)),
			IsSpecialItem:   truthy(cell(row, colSpecial)),
			IsAvailable:     true,
			PreparationTime: domain.DefaultPreparationTime,
		}
		if item.Category == "" {
			item.Category = currentCategory
		}
		if item.Category == "" {
			return nil, fmt.Errorf("row %d: %q has no category", i+1, name)
		}

		if raw := cell(row, colPrice); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				return nil, fmt.Errorf("row %d: invalid price %q", i+1, raw)
			}
			item.Price = price
		}

		variants, err := parseVariants(cell(row, colVariants))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		item.Variants = variants

		if raw := cell(row, colTax); raw != "" {
			tax, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid tax %q", i+1, raw)
			}
			item.TaxPercentage = &tax
		}

		if raw := cell(row, colPrepTime); raw != "" {
			if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
				item.PreparationTime = minutes
			}
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, ErrEmptySheet
	}

	return items, nil
}

// parseVariants reads "Small=120;Large=180".
func parseVariants(raw string) ([]domain.Variant, error) {
	variants := []domain.Variant{}
	if raw == "" {
		return variants, nil
	}

	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, priceStr, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid variant %q", part)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant price %q", part)
		}
		variants = append(variants, domain.Variant{
			Name:        strings.TrimSpace(name),
			Price:       price,
			IsAvailable: true,
		})
	}

	return variants, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[i]))
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "y", "1", "veg":
		return true
	}
	return false
}
