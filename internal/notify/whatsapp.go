package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Zyntrix-company/Qruzine/internal/domain"
	"github.com/Zyntrix-company/Qruzine/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	BaseURL    string
}

// WhatsAppNotifier sends messages through the Twilio WhatsApp API behind a
// circuit breaker.
type WhatsAppNotifier struct {
	cfg    TwilioConfig
	client *http.Client
	cb     *gobreaker.CircuitBreaker[struct{}]
}

func NewWhatsAppNotifier(cfg TwilioConfig) *WhatsAppNotifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = twilioBaseURL
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "twilio-whatsapp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, _, to gobreaker.State) {
			metrics.SetBreakerState(name, to)
		},
	})

	return &WhatsAppNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		cb:     cb,
	}
}

func (n *WhatsAppNotifier) Name() string { return "whatsapp" }

func (n *WhatsAppNotifier) Configured() bool {
	return n.cfg.AccountSID != "" && n.cfg.AuthToken != "" && n.cfg.From != ""
}

func (n *WhatsAppNotifier) NotifyOrder(ctx context.Context, event domain.OrderEvent) error {
	phone := strings.TrimSpace(event.Customer.Phone)
	if phone == "" {
		return ErrSkipped
	}

	_, err := n.cb.Execute(func() (struct{}, error) {
		return struct{}{}, n.send(ctx, phone, subject(event)+"\n\n"+body(event))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("whatsapp unavailable: %w", err)
	}

	return err
}

func (n *WhatsAppNotifier) send(ctx context.Context, phone, text string) error {
	form := url.Values{}
	form.Set("From", whatsappAddr(n.cfg.From))
	form.Set("To", whatsappAddr(phone))
	form.Set("Body", text)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", n.cfg.BaseURL, n.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(n.cfg.AccountSID, n.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return nil
}

func whatsappAddr(phone string) string {
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}
