package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/metrics"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/repo"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrImportDisabled is returned when no spreadsheet credentials are configured.
var ErrImportDisabled = errors.New("menu import is not configured")

type MenuParser interface {
	ParseMenu(ctx context.Context, spreadsheetID string) ([]domain.MenuItem, error)
}

type ImportService struct {
	tasks       repo.ImportTaskRepository
	items       repo.MenuItemRepository
	restaurants repo.RestaurantRepository
	parser      MenuParser
	broker      queue.Broker
	tx          repo.Transactor
	logger      *zap.SugaredLogger
}

func NewImportService(
	tasks repo.ImportTaskRepository,
	items repo.MenuItemRepository,
	restaurants repo.RestaurantRepository,
	parser MenuParser,
	broker queue.Broker,
	tx repo.Transactor,
	logger *zap.SugaredLogger,
) *ImportService {
	return &ImportService{
		tasks:       tasks,
		items:       items,
		restaurants: restaurants,
		parser:      parser,
		broker:      broker,
		tx:          tx,
		logger:      logger,
	}
}

func (s *ImportService) CreateTask(ctx context.Context, restaurantID primitive.ObjectID, spreadsheetID string) (*domain.MenuImportTask, error) {
	if s.parser == nil {
		return nil, ErrImportDisabled
	}

	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, invalid("spreadsheetID is required")
	}

	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	task := &domain.MenuImportTask{
		RestaurantID:  restaurantID,
		SpreadsheetID: spreadsheetID,
		Status:        domain.ImportQueued,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create import task: %w", err)
	}

	message, err := json.Marshal(domain.MenuImportMessage{TaskID: task.ID.Hex()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuImport, message); err != nil {
		_ = s.tasks.UpdateStatus(ctx, task.ID, domain.ImportFailed, err.Error())
		return nil, fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("menu import task created", "task_id", task.ID.Hex(), "spreadsheet_id", spreadsheetID)

	return task, nil
}

// GetTask returns a task only when it belongs to restaurantID.
func (s *ImportService) GetTask(ctx context.Context, restaurantID, taskID primitive.ObjectID) (*domain.MenuImportTask, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.RestaurantID != restaurantID {
		return nil, fmt.Errorf("import task %w", domain.ErrNotFound)
	}
	return task, nil
}

// ProcessTask parses the sheet and stores its items. A failed attempt leaves
// the task failed with the error message so the queue can retry it.
func (s *ImportService) ProcessTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task.Status == domain.ImportCompleted {
		return nil
	}
	if task.Status == domain.ImportFailed {
		if err := s.tasks.IncrementRetryCount(ctx, taskID); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, domain.ImportProcessing, ""); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Infow("processing menu import", "task_id", taskID.Hex(), "restaurant_id", task.RestaurantID.Hex())

	items, err := s.parser.ParseMenu(ctx, task.SpreadsheetID)
	if err != nil {
		return s.fail(ctx, taskID, fmt.Errorf("failed to parse menu: %w", err))
	}

	for i := range items {
		items[i].RestaurantID = task.RestaurantID
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.items.CreateMany(ctx, items); err != nil {
			return fmt.Errorf("failed to save menu items: %w", err)
		}
		return s.tasks.Complete(ctx, taskID, len(items))
	})
	if err != nil {
		return s.fail(ctx, taskID, err)
	}

	metrics.MenuImports.WithLabelValues("completed").Inc()
	s.logger.Infow("menu import completed", "task_id", taskID.Hex(), "items", len(items))

	return nil
}

func (s *ImportService) fail(ctx context.Context, taskID primitive.ObjectID, err error) error {
	metrics.MenuImports.WithLabelValues("failed").Inc()
	s.logger.Errorw("menu import failed", "task_id", taskID.Hex(), "error", err)

	if uerr := s.tasks.UpdateStatus(ctx, taskID, domain.ImportFailed, err.Error()); uerr != nil {
		s.logger.Errorw("failed to mark import task failed", "task_id", taskID.Hex(), "error", uerr)
	}
	return err
}
