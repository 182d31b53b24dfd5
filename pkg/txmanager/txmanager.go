// Package txmanager runs functions inside serializable transactions over the
// metrics-wrapped database, retrying on serialization conflicts.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"
)

const maxSerializationRetries = 3

// pq error code for serialization_failure.
const serializationFailureCode = "40001"

// TransactionManager begins serializable transactions on a dbmetrics.DB.
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager builds a manager over the metrics-wrapped database.
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable executes fn inside a SERIALIZABLE transaction. The transaction
// is placed into the context so repositories pick it up via dbmetrics.GetExecutor.
// Serialization conflicts are retried up to three times.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("txmanager: begin transaction: %w", err)
		}

		txCtx := dbmetrics.WithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			_ = tx.Rollback()
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("txmanager: commit transaction: %w", err)
		}

		return nil
	}

	return fmt.Errorf("txmanager: serialization retries exhausted: %w", lastErr)
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode
	}
	return false
}
