package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/queue"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Dispatcher delivers an order event to the guest.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.OrderEvent) error
}

type OrderNotificationWorker struct {
	dispatcher Dispatcher
	broker     queue.Broker
	logger     *zap.SugaredLogger
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewOrderNotificationWorker(
	dispatcher Dispatcher,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderNotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderNotificationWorker{
		dispatcher: dispatcher,
		broker:     broker,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (w *OrderNotificationWorker) Start() error {
	w.logger.Info("starting order notification worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderNotifications, w.handleMessage)
}

func (w *OrderNotificationWorker) Stop() {
	w.logger.Info("stopping order notification worker")
	w.cancel()
}

func (w *OrderNotificationWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing order event", "order_id", event.OrderID, "event_type", event.EventType)

	if err := w.dispatcher.Dispatch(ctx, event); err != nil {
		w.logger.Errorw("failed to deliver order event", "order_id", event.OrderID, "error", err)
		return err
	}

	return nil
}
