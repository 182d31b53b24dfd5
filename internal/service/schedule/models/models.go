package models

import (
	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// BreakRequest is one break interval inside a template or override window.
type BreakRequest struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	Label     *string          `json:"label,omitempty"`
}

// CreateTemplateRequest creates a recurring weekly template.
type CreateTemplateRequest struct {
	ProviderID int64            `json:"provider_id"`
	DayOfWeek  int              `json:"day_of_week"`
	StartTime  types.TimeString `json:"start_time"`
	EndTime    types.TimeString `json:"end_time"`
	IsEnabled  bool             `json:"is_enabled"`
	Breaks     []BreakRequest   `json:"breaks,omitempty"`
}

// UpdateTemplateRequest replaces the template's window, enabled flag and
// break set wholesale.
type UpdateTemplateRequest struct {
	ProviderID int64            `json:"provider_id"`
	DayOfWeek  int              `json:"day_of_week"`
	StartTime  types.TimeString `json:"start_time"`
	EndTime    types.TimeString `json:"end_time"`
	IsEnabled  bool             `json:"is_enabled"`
	Breaks     []BreakRequest   `json:"breaks,omitempty"`
}

// UpsertOverrideRequest creates or replaces the override for one date.
// Both bounds null marks the date closed all day.
type UpsertOverrideRequest struct {
	ProviderID int64             `json:"provider_id"`
	Date       string            `json:"date"`
	StartTime  *types.TimeString `json:"start_time,omitempty"`
	EndTime    *types.TimeString `json:"end_time,omitempty"`
	Reason     *string           `json:"reason,omitempty"`
	Breaks     []BreakRequest    `json:"breaks,omitempty"`
}

// BreakResponse is one persisted break interval.
type BreakResponse struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	Label     *string          `json:"label,omitempty"`
}

// TemplateResponse is the persisted template.
type TemplateResponse struct {
	ID         int64            `json:"id"`
	ProviderID int64            `json:"provider_id"`
	DayOfWeek  int              `json:"day_of_week"`
	StartTime  types.TimeString `json:"start_time"`
	EndTime    types.TimeString `json:"end_time"`
	IsEnabled  bool             `json:"is_enabled"`
	Breaks     []BreakResponse  `json:"breaks,omitempty"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
}

// OverrideResponse is the persisted override.
type OverrideResponse struct {
	ID         int64             `json:"id"`
	ProviderID int64             `json:"provider_id"`
	Date       string            `json:"date"`
	Closed     bool              `json:"closed"`
	StartTime  *types.TimeString `json:"start_time,omitempty"`
	EndTime    *types.TimeString `json:"end_time,omitempty"`
	Reason     *string           `json:"reason,omitempty"`
	Breaks     []BreakResponse   `json:"breaks,omitempty"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

// TemplateFromDomain maps a persisted template to the response shape.
func TemplateFromDomain(tmpl *domain.DailyTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		ID:         tmpl.ID,
		ProviderID: tmpl.ProviderID,
		DayOfWeek:  tmpl.DayOfWeek,
		StartTime:  tmpl.StartTime,
		EndTime:    tmpl.EndTime,
		IsEnabled:  tmpl.IsEnabled,
		CreatedAt:  tmpl.CreatedAt.Format(domain.TimestampFormat),
		UpdatedAt:  tmpl.UpdatedAt.Format(domain.TimestampFormat),
	}
	for _, br := range tmpl.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Label:     br.Label,
		})
	}
	return resp
}

// OverrideFromDomain maps a persisted override to the response shape.
func OverrideFromDomain(override *domain.DateOverride) *OverrideResponse {
	resp := &OverrideResponse{
		ID:         override.ID,
		ProviderID: override.ProviderID,
		Date:       override.Date,
		Closed:     override.IsClosedAllDay(),
		StartTime:  override.StartTime,
		EndTime:    override.EndTime,
		Reason:     override.Reason,
		CreatedAt:  override.CreatedAt.Format(domain.TimestampFormat),
		UpdatedAt:  override.UpdatedAt.Format(domain.TimestampFormat),
	}
	for _, br := range override.Breaks {
		resp.Breaks = append(resp.Breaks, BreakResponse{
			StartTime: br.StartTime,
			EndTime:   br.EndTime,
			Label:     br.Label,
		})
	}
	return resp
}
