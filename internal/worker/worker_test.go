package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/Zyntrix-company/Qruzine/internal/service"
	"github.com/Zyntrix-company/Qruzine/internal/store/memory"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event domain.OrderEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return d.err
}

func TestOrderNotificationWorker(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		err      error
		wantSeen int
		wantDead int
	}{
		{"delivered", mustJSON(t, domain.OrderEvent{EventType: domain.EventOrderPlaced, OrderID: "ORD-1"}), nil, 1, 0},
		{"malformed payload dead-lettered", []byte("{"), nil, 0, 1},
		{"dispatch failure retried then dead-lettered", mustJSON(t, domain.OrderEvent{OrderID: "ORD-2"}), errors.New("down"), 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := queue.NewInlineBroker(queue.Config{MaxRetries: 2, RetryDelay: 1})
			d := &recordingDispatcher{err: tt.err}
			w := NewOrderNotificationWorker(d, broker, zap.NewNop().Sugar())
			if err := w.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			defer w.Stop()

			if err := broker.Publish(context.Background(), queue.QueueOrderNotifications, tt.payload); err != nil {
				t.Fatalf("Publish() error = %v", err)
			}
			broker.Wait()

			if len(d.events) != tt.wantSeen {
				t.Errorf("dispatched %d times, want %d", len(d.events), tt.wantSeen)
			}
			if tt.wantSeen > 0 && d.events[0].Timestamp.IsZero() {
				t.Error("timestamp not defaulted")
			}
			if got := len(broker.DeadLetters(queue.QueueOrderNotificationsDLQ)); got != tt.wantDead {
				t.Errorf("dead letters = %d, want %d", got, tt.wantDead)
			}
		})
	}
}

type sheetParser struct {
	items []domain.MenuItem
	err   error
}

func (p *sheetParser) ParseMenu(context.Context, string) ([]domain.MenuItem, error) {
	return p.items, p.err
}

func TestMenuImportWorkerHandleMessage(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()

	tests := []struct {
		name       string
		payload    func(task primitive.ObjectID) []byte
		parseErr   error
		wantErr    bool
		wantStatus domain.ImportTaskStatus
		wantItems  int
	}{
		{
			name:       "imports the task's sheet",
			payload:    func(task primitive.ObjectID) []byte { return mustJSON(t, domain.MenuImportMessage{TaskID: task.Hex()}) },
			wantStatus: domain.ImportCompleted,
			wantItems:  2,
		},
		{
			name:       "malformed payload",
			payload:    func(primitive.ObjectID) []byte { return []byte("{") },
			wantErr:    true,
			wantStatus: domain.ImportQueued,
		},
		{
			name:       "invalid task id",
			payload:    func(primitive.ObjectID) []byte { return mustJSON(t, domain.MenuImportMessage{TaskID: "nope"}) },
			wantErr:    true,
			wantStatus: domain.ImportQueued,
		},
		{
			name:       "unknown task",
			payload:    func(primitive.ObjectID) []byte { return mustJSON(t, domain.MenuImportMessage{TaskID: primitive.NewObjectID().Hex()}) },
			wantErr:    true,
			wantStatus: domain.ImportQueued,
		},
		{
			name:       "parser failure marks the task failed",
			payload:    func(task primitive.ObjectID) []byte { return mustJSON(t, domain.MenuImportMessage{TaskID: task.Hex()}) },
			parseErr:   errors.New("sheet not shared"),
			wantErr:    true,
			wantStatus: domain.ImportFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			broker := queue.NewInlineBroker(queue.Config{MaxRetries: 1, RetryDelay: 1})
			defer broker.Close()

			restaurant := &domain.Restaurant{Name: "Spice Route", IsActive: true}
			if err := store.Restaurants.Create(ctx, restaurant); err != nil {
				t.Fatalf("create restaurant: %v", err)
			}
			task := &domain.MenuImportTask{RestaurantID: restaurant.ID, SpreadsheetID: "sheet", Status: domain.ImportQueued}
			if err := store.ImportTasks.Create(ctx, task); err != nil {
				t.Fatalf("create task: %v", err)
			}

			parser := &sheetParser{
				items: []domain.MenuItem{
					{Name: "Dal", Category: "Mains", Price: 120, IsAvailable: true},
					{Name: "Lassi", Category: "Drinks", Price: 80, IsAvailable: true},
				},
				err: tt.parseErr,
			}
			imports := service.NewImportService(store.ImportTasks, store.MenuItems, store.Restaurants, parser, broker, store, logger)
			w := NewMenuImportWorker(imports, broker, logger)

			err := w.handleMessage(ctx, tt.payload(task.ID))
			if (err != nil) != tt.wantErr {
				t.Fatalf("handleMessage() error = %v, wantErr %v", err, tt.wantErr)
			}

			got, err := store.ImportTasks.GetByID(ctx, task.ID)
			if err != nil {
				t.Fatalf("get task: %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("task status = %q, want %q", got.Status, tt.wantStatus)
			}

			items, err := store.MenuItems.ListByRestaurant(ctx, restaurant.ID, false)
			if err != nil {
				t.Fatalf("list items: %v", err)
			}
			if len(items) != tt.wantItems {
				t.Errorf("imported %d items, want %d", len(items), tt.wantItems)
			}
		})
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
