package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"
	"github.com/m-orlv/STB-AvailabilityService/pkg/psqlbuilder"
)

var overrideColumns = []string{
	"id",
	"provider_id",
	// DATE scans as time.Time through lib/pq; render the key in SQL so it
	// stays the canonical YYYY-MM-DD string.
	"to_char(date, 'YYYY-MM-DD') AS date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
	"updated_at",
}

// UpsertOverride inserts or fully replaces the override for (provider, date).
// The date key is unique per provider, so a repeated write for the same date
// replaces the previous exception. Inline breaks are swapped wholesale.
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("provider_id", "date", "start_time", "end_time", "reason").
		Values(override.ProviderID, override.Date, override.StartTime, override.EndTime, override.Reason).
		Suffix(`ON CONFLICT (provider_id, date) DO UPDATE
			SET start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    reason = EXCLUDED.reason,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}
	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	breaks, err := r.replaceOverrideBreaks(ctx, override.ID, override.Breaks)
	if err != nil {
		return nil, err
	}
	override.Breaks = breaks

	return override, nil
}

// GetOverrideByProviderAndDate fetches the override for one date key,
// inline breaks included.
func (r *Repository) GetOverrideByProviderAndDate(ctx context.Context, providerID int64, date string) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID, "date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrideByProviderAndDate - scan override: %v", ErrScanRow, err)
	}

	breaks, err := r.getBreaksByOverride(ctx, override.ID)
	if err != nil {
		return nil, err
	}
	override.Breaks = breaks

	return override, nil
}

// GetOverridesByProviderAndRange fetches overrides with date keys in
// [from, to], inline breaks included, in date order.
func (r *Repository) GetOverridesByProviderAndRange(ctx context.Context, providerID int64, from, to string) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesByProviderAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesByProviderAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesByProviderAndRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesByProviderAndRange - rows error: %v", ErrScanRow, err)
	}

	for _, override := range overrides {
		breaks, err := r.getBreaksByOverride(ctx, override.ID)
		if err != nil {
			return nil, err
		}
		override.Breaks = breaks
	}

	return overrides, nil
}

// DeleteOverride removes the override for one date key, breaks included.
func (r *Repository) DeleteOverride(ctx context.Context, providerID int64, date string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Child rows first; the schema also cascades.
	subQuery, subArgs, err := psqlbuilder.Delete("override_breaks").
		Where(squirrel.Expr(
			"override_id IN (SELECT id FROM date_overrides WHERE provider_id = ? AND date = ?)",
			providerID, date,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build breaks delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, subQuery, subArgs...); err != nil {
		return fmt.Errorf("%w: DeleteOverride - delete breaks: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID, "date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func (r *Repository) getBreaksByOverride(ctx context.Context, overrideID int64) ([]domain.OverrideBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "override_id", "start_time", "end_time", "label", "created_at").
		From("override_breaks").
		Where(squirrel.Eq{"override_id": overrideID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaksByOverride - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBreaksByOverride - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.OverrideBreak, 0)
	for rows.Next() {
		var br domain.OverrideBreak
		var createdAt sql.NullTime
		if err := rows.Scan(&br.ID, &br.OverrideID, &br.StartTime, &br.EndTime, &br.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: getBreaksByOverride - scan row: %v", ErrScanRow, err)
		}
		br.CreatedAt = createdAt.Time
		breaks = append(breaks, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBreaksByOverride - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

func (r *Repository) replaceOverrideBreaks(ctx context.Context, overrideID int64, breaks []domain.OverrideBreak) ([]domain.OverrideBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("override_breaks").
		Where(squirrel.Eq{"override_id": overrideID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: replaceOverrideBreaks - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: replaceOverrideBreaks - execute delete: %v", ErrExecQuery, err)
	}

	if len(breaks) == 0 {
		return []domain.OverrideBreak{}, nil
	}

	insertBuilder := psqlbuilder.Insert("override_breaks").
		Columns("override_id", "start_time", "end_time", "label")
	for _, br := range breaks {
		insertBuilder = insertBuilder.Values(overrideID, br.StartTime, br.EndTime, br.Label)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, override_id, start_time, end_time, label, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: replaceOverrideBreaks - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: replaceOverrideBreaks - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	inserted := make([]domain.OverrideBreak, 0, len(breaks))
	for rows.Next() {
		var br domain.OverrideBreak
		var createdAt sql.NullTime
		if err := rows.Scan(&br.ID, &br.OverrideID, &br.StartTime, &br.EndTime, &br.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: replaceOverrideBreaks - scan row: %v", ErrScanRow, err)
		}
		br.CreatedAt = createdAt.Time
		inserted = append(inserted, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: replaceOverrideBreaks - rows error: %v", ErrScanRow, err)
	}

	return inserted, nil
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var override domain.DateOverride
	var startTime, endTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.ProviderID,
		&override.Date,
		&startTime,
		&endTime,
		&override.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// NULL bounds mean the provider is closed that date.
	if startTime.Valid {
		ts, err := normalizeStoredTime(startTime.String)
		if err != nil {
			return nil, err
		}
		override.StartTime = &ts
	}
	if endTime.Valid {
		ts, err := normalizeStoredTime(endTime.String)
		if err != nil {
			return nil, err
		}
		override.EndTime = &ts
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
