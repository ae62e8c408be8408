package queue

import (
	"context"
	"time"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueOrderNotifications    = "order-notifications"
	QueueMenuImport            = "menu-import"
	QueueOrderNotificationsDLQ = "order-notifications-dlq"
	QueueMenuImportDLQ         = "menu-import-dlq"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

type Config struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.PrefetchCount <= 0 {
		c.PrefetchCount = 10
	}
	return c
}

// backoff doubles the base delay per attempt: base, 2*base, 4*base...
func backoff(base time.Duration, attempt int) time.Duration {
	return base << attempt
}

func dlqName(queueName string) string {
	return queueName + "-dlq"
}
