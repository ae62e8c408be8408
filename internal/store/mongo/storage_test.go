package mongo

import (
	"context"
	"errors"
	"testing"
)

func TestHelloSupportsTransactions(t *testing.T) {
	tests := []struct {
		name  string
		hello helloResult
		want  bool
	}{
		{"standalone", helloResult{}, false},
		{"replica set member", helloResult{SetName: "rs0"}, true},
		{"mongos router", helloResult{Msg: "isdbgrid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hello.supportsTransactions(); got != tt.want {
				t.Errorf("supportsTransactions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithTransactionStandalone(t *testing.T) {
	s := &Storage{}
	want := errors.New("boom")

	calls := 0
	err := s.WithTransaction(context.Background(), func(ctx context.Context) error {
		calls++
		return want
	})

	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}
	if !errors.Is(err, want) {
		t.Errorf("WithTransaction() error = %v, want %v", err, want)
	}
}
