package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner executes a function inside a single transaction. Repository calls
// made with the context passed to fn join that transaction; if fn returns an
// error the whole unit is rolled back.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionTxRunner struct {
	client *mongo.Client
}

// NewTxRunner creates a TxRunner backed by MongoDB sessions.
func NewTxRunner(client *mongo.Client) TxRunner {
	return &sessionTxRunner{client: client}
}

func (r *sessionTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}
