package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/metrics"
	"github.com/Zyntrix-company/Qruzine/internal/notify"
	"go.uber.org/zap"
)

type NotificationService struct {
	notifiers []notify.Notifier
	logger    *zap.SugaredLogger
}

func NewNotificationService(logger *zap.SugaredLogger, notifiers ...notify.Notifier) *NotificationService {
	return &NotificationService{
		notifiers: notifiers,
		logger:    logger,
	}
}

// Dispatch sends an order event through every configured channel. It fails
// only when all attempted channels failed, so one broken channel does not
// make the queue redeliver messages the others already sent.
func (s *NotificationService) Dispatch(ctx context.Context, event domain.OrderEvent) error {
	var (
		attempted int
		errs      []error
	)

	for _, n := range s.notifiers {
		if !n.Configured() {
			continue
		}

		err := n.NotifyOrder(ctx, event)
		switch {
		case errors.Is(err, notify.ErrSkipped):
			metrics.NotificationsSent.WithLabelValues(n.Name(), "skipped").Inc()
			continue
		case err != nil:
			metrics.NotificationsSent.WithLabelValues(n.Name(), "failed").Inc()
			s.logger.Warnw("notification failed",
				"channel", n.Name(),
				"order_id", event.OrderID,
				"event_type", event.EventType,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		default:
			metrics.NotificationsSent.WithLabelValues(n.Name(), "sent").Inc()
			s.logger.Infow("notification sent", "channel", n.Name(), "order_id", event.OrderID)
		}
		attempted++
	}

	if attempted > 0 && len(errs) == attempted {
		return errors.Join(errs...)
	}
	return nil
}
