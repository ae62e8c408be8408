package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImportTaskRepository struct {
	mu   sync.RWMutex
	data map[primitive.ObjectID]domain.MenuImportTask
}

func NewImportTaskRepository() *ImportTaskRepository {
	return &ImportTaskRepository{data: make(map[primitive.ObjectID]domain.MenuImportTask)}
}

func (r *ImportTaskRepository) Create(_ context.Context, task *domain.MenuImportTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.data[task.ID] = *task
	return nil
}

func (r *ImportTaskRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MenuImportTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("import task %w", domain.ErrNotFound)
	}
	return &task, nil
}

func (r *ImportTaskRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.ImportTaskStatus, errorMsg string) error {
	return r.update(id, func(task *domain.MenuImportTask) {
		task.Status = status
		if errorMsg != "" {
			task.ErrorMessage = errorMsg
		}
	})
}

func (r *ImportTaskRepository) Complete(_ context.Context, id primitive.ObjectID, itemsImported int) error {
	return r.update(id, func(task *domain.MenuImportTask) {
		task.Status = domain.ImportCompleted
		task.ItemsImported = itemsImported
	})
}

func (r *ImportTaskRepository) IncrementRetryCount(_ context.Context, id primitive.ObjectID) error {
	return r.update(id, func(task *domain.MenuImportTask) {
		task.RetryCount++
	})
}

func (r *ImportTaskRepository) update(id primitive.ObjectID, apply func(*domain.MenuImportTask)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.data[id]
	if !ok {
		return fmt.Errorf("import task %w", domain.ErrNotFound)
	}
	apply(&task)
	task.UpdatedAt = time.Now()
	r.data[id] = task
	return nil
}
