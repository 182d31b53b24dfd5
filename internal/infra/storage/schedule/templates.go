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

// Repository persists daily templates, template breaks and date overrides.
type Repository struct {
	db DBExecutor
}

// NewRepository builds a schedule repository over the given executor.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var templateColumns = []string{
	"id",
	"provider_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_enabled",
	"created_at",
	"updated_at",
}

// CreateTemplate inserts a template and its inline breaks.
// Runs inside the active transaction when one is present in the context.
func (r *Repository) CreateTemplate(ctx context.Context, tmpl *domain.DailyTemplate) (*domain.DailyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("daily_templates").
		Columns("provider_id", "day_of_week", "start_time", "end_time", "is_enabled").
		Values(tmpl.ProviderID, tmpl.DayOfWeek, tmpl.StartTime, tmpl.EndTime, tmpl.IsEnabled).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tmpl.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - execute insert: %v", ErrExecQuery, err)
	}
	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time

	breaks, err := r.insertTemplateBreaks(ctx, tmpl.ID, tmpl.Breaks)
	if err != nil {
		return nil, err
	}
	tmpl.Breaks = breaks

	return tmpl, nil
}

// GetTemplateByID fetches one template with its breaks.
func (r *Repository) GetTemplateByID(ctx context.Context, id int64) (*domain.DailyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("daily_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByID - build select query: %v", ErrBuildQuery, err)
	}

	tmpl, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateByID - scan template: %v", ErrScanRow, err)
	}

	breaks, err := r.GetBreaksByTemplate(ctx, tmpl.ID)
	if err != nil {
		return nil, err
	}
	tmpl.Breaks = breaks

	return tmpl, nil
}

// GetTemplatesByProvider fetches all templates of a provider, breaks included,
// ordered by weekday.
func (r *Repository) GetTemplatesByProvider(ctx context.Context, providerID int64) ([]*domain.DailyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("daily_templates").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC, created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplatesByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplatesByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.DailyTemplate, 0)
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTemplatesByProvider - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplatesByProvider - rows error: %v", ErrScanRow, err)
	}

	for _, tmpl := range templates {
		breaks, err := r.GetBreaksByTemplate(ctx, tmpl.ID)
		if err != nil {
			return nil, err
		}
		tmpl.Breaks = breaks
	}

	return templates, nil
}

// GetEnabledTemplateForWeekday fetches the enabled template for a weekday,
// breaks included. Legacy data may hold several enabled rows per weekday
// (uniqueness is enforced at the write boundary only since then); the most
// recently created row wins, deterministically.
func (r *Repository) GetEnabledTemplateForWeekday(ctx context.Context, providerID int64, dayOfWeek int) (*domain.DailyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("daily_templates").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"day_of_week": dayOfWeek,
			"is_enabled":  true,
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnabledTemplateForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	tmpl, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnabledTemplateForWeekday - scan template: %v", ErrScanRow, err)
	}

	breaks, err := r.GetBreaksByTemplate(ctx, tmpl.ID)
	if err != nil {
		return nil, err
	}
	tmpl.Breaks = breaks

	return tmpl, nil
}

// HasEnabledTemplateForWeekday reports whether an enabled template already
// exists for (provider, weekday), optionally excluding one template id.
// Used by the write boundary to reject duplicates.
func (r *Repository) HasEnabledTemplateForWeekday(ctx context.Context, providerID int64, dayOfWeek int, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("daily_templates").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"day_of_week": dayOfWeek,
			"is_enabled":  true,
		}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasEnabledTemplateForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasEnabledTemplateForWeekday - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// UpdateTemplate updates a template's window, weekday and enabled flag.
// Breaks are replaced separately via ReplaceTemplateBreaks.
func (r *Repository) UpdateTemplate(ctx context.Context, id int64, tmpl *domain.DailyTemplate) (*domain.DailyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("daily_templates").
		Set("day_of_week", tmpl.DayOfWeek).
		Set("start_time", tmpl.StartTime).
		Set("end_time", tmpl.EndTime).
		Set("is_enabled", tmpl.IsEnabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING provider_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateTemplate - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tmpl.ProviderID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateTemplate - execute update: %v", ErrExecQuery, err)
	}

	tmpl.ID = id
	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time

	return tmpl, nil
}

// DeleteTemplate removes a template; its breaks are owned exclusively by it
// and go with it (ON DELETE CASCADE backs the same rule in the schema).
func (r *Repository) DeleteTemplate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.deleteBreaksByTemplate(ctx, id); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Delete("daily_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// GetBreaksByTemplate fetches a template's breaks in time order.
func (r *Repository) GetBreaksByTemplate(ctx context.Context, templateID int64) ([]domain.TemplateBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "template_id", "start_time", "end_time", "label", "created_at").
		From("template_breaks").
		Where(squirrel.Eq{"template_id": templateID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaksByTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaksByTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.TemplateBreak, 0)
	for rows.Next() {
		var br domain.TemplateBreak
		var createdAt sql.NullTime
		if err := rows.Scan(&br.ID, &br.TemplateID, &br.StartTime, &br.EndTime, &br.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetBreaksByTemplate - scan row: %v", ErrScanRow, err)
		}
		br.CreatedAt = createdAt.Time
		breaks = append(breaks, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBreaksByTemplate - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

// ReplaceTemplateBreaks swaps a template's break set wholesale.
func (r *Repository) ReplaceTemplateBreaks(ctx context.Context, templateID int64, breaks []domain.TemplateBreak) ([]domain.TemplateBreak, error) {
	if err := r.deleteBreaksByTemplate(ctx, templateID); err != nil {
		return nil, err
	}
	return r.insertTemplateBreaks(ctx, templateID, breaks)
}

func (r *Repository) insertTemplateBreaks(ctx context.Context, templateID int64, breaks []domain.TemplateBreak) ([]domain.TemplateBreak, error) {
	if len(breaks) == 0 {
		return []domain.TemplateBreak{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("template_breaks").
		Columns("template_id", "start_time", "end_time", "label")
	for _, br := range breaks {
		insertBuilder = insertBuilder.Values(templateID, br.StartTime, br.EndTime, br.Label)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, template_id, start_time, end_time, label, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: insertTemplateBreaks - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: insertTemplateBreaks - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	inserted := make([]domain.TemplateBreak, 0, len(breaks))
	for rows.Next() {
		var br domain.TemplateBreak
		var createdAt sql.NullTime
		if err := rows.Scan(&br.ID, &br.TemplateID, &br.StartTime, &br.EndTime, &br.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: insertTemplateBreaks - scan row: %v", ErrScanRow, err)
		}
		br.CreatedAt = createdAt.Time
		inserted = append(inserted, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: insertTemplateBreaks - rows error: %v", ErrScanRow, err)
	}

	return inserted, nil
}

func (r *Repository) deleteBreaksByTemplate(ctx context.Context, templateID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("template_breaks").
		Where(squirrel.Eq{"template_id": templateID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteBreaksByTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteBreaksByTemplate - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.DailyTemplate, error) {
	var tmpl domain.DailyTemplate
	var createdAt, updatedAt sql.NullTime

	// Bounds may be NULL for legacy rows; TimeString scans NULL as the zero
	// value and such a template contributes no slots.
	err := row.Scan(
		&tmpl.ID,
		&tmpl.ProviderID,
		&tmpl.DayOfWeek,
		&tmpl.StartTime,
		&tmpl.EndTime,
		&tmpl.IsEnabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tmpl.CreatedAt = createdAt.Time
	tmpl.UpdatedAt = updatedAt.Time

	return &tmpl, nil
}
