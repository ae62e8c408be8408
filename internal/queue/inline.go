package queue

import (
	"context"
	"errors"
	"sync"
	"time"
)

// InlineBroker delivers messages in-process. It stands in for RabbitMQ when
// no broker URL is configured and keeps the same retry and dead-letter rules.
type InlineBroker struct {
	cfg      Config
	mu       sync.RWMutex
	handlers map[string]MessageHandler
	dead     map[string][][]byte
	wg       sync.WaitGroup
	closed   bool
}

func NewInlineBroker(cfg Config) *InlineBroker {
	return &InlineBroker{
		cfg:      cfg.withDefaults(),
		handlers: make(map[string]MessageHandler),
		dead:     make(map[string][][]byte),
	}
}

func (b *InlineBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return errors.New("broker is closed")
	}

	handler, ok := b.handlers[queueName]
	if !ok {
		return nil
	}

	body := append([]byte(nil), message...)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.deliver(context.WithoutCancel(ctx), queueName, body, handler)
	}()

	return nil
}

func (b *InlineBroker) deliver(ctx context.Context, queueName string, message []byte, handler MessageHandler) {
	for attempt := 0; ; attempt++ {
		if err := handler(ctx, message); err == nil {
			return
		}
		if attempt >= b.cfg.MaxRetries {
			break
		}
		time.Sleep(backoff(b.cfg.RetryDelay, attempt))
	}

	b.mu.Lock()
	dlq := dlqName(queueName)
	b.dead[dlq] = append(b.dead[dlq], message)
	b.mu.Unlock()
}

func (b *InlineBroker) Subscribe(_ context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[queueName] = handler
	return nil
}

// DeadLetters returns the messages parked on a dead-letter queue.
func (b *InlineBroker) DeadLetters(queueName string) [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return append([][]byte(nil), b.dead[queueName]...)
}

// Wait blocks until every in-flight delivery has finished.
func (b *InlineBroker) Wait() {
	b.wg.Wait()
}

func (b *InlineBroker) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}
