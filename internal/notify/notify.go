// Package notify delivers order updates to guests over email and WhatsApp.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
)

// ErrSkipped is returned when a notifier has nothing to send for an event,
// e.g. the guest left no email address.
var ErrSkipped = errors.New("notification skipped")

type Notifier interface {
	Name() string
	Configured() bool
	NotifyOrder(ctx context.Context, event domain.OrderEvent) error
}

func subject(event domain.OrderEvent) string {
	if event.EventType == domain.EventOrderPlaced {
		return fmt.Sprintf("Order %s received", event.OrderID)
	}
	return fmt.Sprintf("Order %s is %s", event.OrderID, strings.ToLower(string(event.NewStatus)))
}

func body(event domain.OrderEvent) string {
	var b strings.Builder

	name := event.Customer.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)

	switch event.EventType {
	case domain.EventOrderPlaced:
		fmt.Fprintf(&b, "Thanks for ordering at %s. Your order %s has been received.\n", event.Restaurant, event.OrderID)
		fmt.Fprintf(&b, "Total: %.2f\n", event.Total)
	default:
		fmt.Fprintf(&b, "Your order %s at %s is now %s.\n", event.OrderID, event.Restaurant, event.NewStatus)
	}

	return b.String()
}
