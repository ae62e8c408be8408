package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/notify"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	name       string
	configured bool
	err        error
	calls      int
}

func (n *fakeNotifier) Name() string     { return n.name }
func (n *fakeNotifier) Configured() bool { return n.configured }

func (n *fakeNotifier) NotifyOrder(context.Context, domain.OrderEvent) error {
	n.calls++
	return n.err
}

func TestDispatch(t *testing.T) {
	boom := errors.New("smtp down")

	tests := []struct {
		name      string
		notifiers []*fakeNotifier
		wantErr   bool
	}{
		{"nothing configured", []*fakeNotifier{{name: "email"}}, false},
		{"all sent", []*fakeNotifier{{name: "email", configured: true}, {name: "whatsapp", configured: true}}, false},
		{"one of two failed", []*fakeNotifier{{name: "email", configured: true, err: boom}, {name: "whatsapp", configured: true}}, false},
		{"skipped is not a failure", []*fakeNotifier{{name: "email", configured: true, err: notify.ErrSkipped}}, false},
		{"all failed", []*fakeNotifier{{name: "email", configured: true, err: boom}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ns []notify.Notifier
			for _, n := range tt.notifiers {
				ns = append(ns, n)
			}
			svc := NewNotificationService(zap.NewNop().Sugar(), ns...)

			err := svc.Dispatch(context.Background(), domain.OrderEvent{EventType: domain.EventOrderPlaced, OrderID: "ORD-1"})
			if (err != nil) != tt.wantErr {
				t.Errorf("Dispatch() error = %v, wantErr %v", err, tt.wantErr)
			}

			for _, n := range tt.notifiers {
				if !n.configured && n.calls != 0 {
					t.Errorf("%s called while unconfigured", n.name)
				}
			}
		})
	}
}
