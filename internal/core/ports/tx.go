package ports

import "context"

// TxRunner executes fn within a multi-document transaction when the backing
// store supports one. Implementations that cannot open a transaction (e.g. a
// standalone mongod) run fn directly, which preserves the original
// best-effort, eventually-consistent write sequence.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx is a pass-through TxRunner for tests and stores without transactions.
type NoTx struct{}

func (NoTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
