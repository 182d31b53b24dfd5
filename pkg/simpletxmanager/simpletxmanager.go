// Package simpletxmanager is the txmanager counterpart for setups running
// without the metrics wrapper, operating directly on *sql.DB.
package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"
)

const maxSerializationRetries = 3

const serializationFailureCode = "40001"

// TransactionManager begins serializable transactions on a plain *sql.DB.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager builds a manager over a plain database handle.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable executes fn inside a SERIALIZABLE transaction, propagating it
// through the context, with retries on serialization conflicts.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
		}

		wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}
		txCtx := dbmetrics.WithTx(ctx, wrapped)

		if err := fn(txCtx); err != nil {
			_ = wrapped.Rollback()
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := wrapped.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
		}

		return nil
	}

	return fmt.Errorf("simpletxmanager: serialization retries exhausted: %w", lastErr)
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode
	}
	return false
}
