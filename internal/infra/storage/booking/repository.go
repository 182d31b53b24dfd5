// Package booking is a read-only repository over the bookings table owned by
// the booking service. Booking lifecycle (creation, status transitions,
// cancellation) lives there; this service only queries committed time to
// reconcile it with computed availability.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"
	"github.com/m-orlv/STB-AvailabilityService/pkg/psqlbuilder"
)

// Repository reads booking records.
type Repository struct {
	db DBExecutor
}

// NewRepository builds a booking read repository over the given executor.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOccupyingByProviderAndRange fetches the provider's occupying bookings
// whose [start_at, end_at) interval overlaps [from, to), in start order.
// Declined and cancelled bookings never participate in occupancy marking.
func (r *Repository) GetOccupyingByProviderAndRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"client_id",
		"start_at",
		"end_at",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": domain.OccupyingStatuses}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByProviderAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByProviderAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.ProviderID,
			&b.ClientID,
			&b.StartAt,
			&b.EndAt,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetOccupyingByProviderAndRange - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByProviderAndRange - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
