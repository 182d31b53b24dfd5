package schedule

import (
	"context"
	"database/sql"

	"github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"
)

// Re-export the dbmetrics executor interfaces for repository consumers.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions.
// Satisfied by *dbmetrics.DB; *sql.DB is handled via a fallback.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
