package repo

import "context"

// Transactor runs fn atomically. The ctx handed to fn must be passed to every
// repository call that should take part in the transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
