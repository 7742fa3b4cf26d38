package mongo

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rs/zerolog"
)

// TxRunner executes multi-document write sequences inside a session
// transaction when the deployment supports one (replica set or mongos).
//
// On a standalone mongod the first transactional write fails before anything
// persists; the runner then degrades permanently to plain sequential writes,
// which matches the original best-effort behaviour of the redemption flow.
type TxRunner struct {
	client      *mongo.Client
	unsupported atomic.Bool
	log         zerolog.Logger
}

func NewTxRunner(client *mongo.Client, log zerolog.Logger) *TxRunner {
	return &TxRunner{client: client, log: log}
}

func (t *TxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.unsupported.Load() {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		t.log.Warn().Err(err).Msg("mongo sessions unavailable, running writes without transaction")
		t.unsupported.Store(true)
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		t.log.Warn().Err(err).Msg("mongo transactions unsupported by deployment, degrading to sequential writes")
		t.unsupported.Store(true)
		return fn(ctx)
	}
	return err
}

func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 { // IllegalOperation
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
