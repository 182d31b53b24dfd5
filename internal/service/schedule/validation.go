package schedule

import (
	"fmt"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

func validateTemplateFields(providerID int64, dayOfWeek int, start, end types.TimeString, breaks []models.BreakRequest) error {
	if providerID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if end.IsBefore(start) {
		return fmt.Errorf("%w: window %s-%s", ErrInvalidInterval, start, end)
	}
	return validateBreaks(breaks, start, end)
}

func validateOverrideRequest(req *models.UpsertOverrideRequest) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD: %v", ErrInvalidInput, err)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	// One-sided bounds are ambiguous: the caller must say open hours or
	// closed all day, never half of each.
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: startTime and endTime must both be set or both be null", ErrInvalidInput)
	}
	if req.StartTime == nil {
		if len(req.Breaks) > 0 {
			return fmt.Errorf("%w: a closed date cannot carry breaks", ErrInvalidInput)
		}
		return nil
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if req.EndTime.IsBefore(*req.StartTime) {
		return fmt.Errorf("%w: window %s-%s", ErrInvalidInterval, *req.StartTime, *req.EndTime)
	}
	return validateBreaks(req.Breaks, *req.StartTime, *req.EndTime)
}

func validateBreaks(breaks []models.BreakRequest, windowStart, windowEnd types.TimeString) error {
	for i, br := range breaks {
		if err := br.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: break[%d] startTime: %v", ErrInvalidInput, i, err)
		}
		if err := br.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: break[%d] endTime: %v", ErrInvalidInput, i, err)
		}
		if !br.EndTime.IsAfter(br.StartTime) {
			return fmt.Errorf("%w: break[%d] %s-%s", ErrInvalidInterval, i, br.StartTime, br.EndTime)
		}
		if br.StartTime.IsBefore(windowStart) || br.EndTime.IsAfter(windowEnd) {
			return fmt.Errorf("%w: break[%d] %s-%s lies outside window %s-%s",
				ErrInvalidInput, i, br.StartTime, br.EndTime, windowStart, windowEnd)
		}
		if br.Label != nil && len(*br.Label) > domain.MaxLabelLength {
			return fmt.Errorf("%w: break[%d] label exceeds %d characters",
				ErrInvalidInput, i, domain.MaxLabelLength)
		}
	}
	return nil
}
