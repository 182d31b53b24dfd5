package get_availability

import (
	"fmt"
	"time"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

// validateRequest checks the request shape.
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return nil
}

// parseDate parses the YYYY-MM-DD key at midnight of the provider's timezone.
func parseDate(date string, loc *time.Location) (time.Time, error) {
	parsed, err := types.ParseDateInLocation(date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return parsed, nil
}

// validateHorizon rejects dates past the provider's published booking horizon.
// Past dates remain queryable: the internal calendar view looks backwards.
func validateHorizon(date, now time.Time, horizonDays int) error {
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, horizonDays)

	if date.After(maxDate) {
		return fmt.Errorf("%w: availability is published %d days ahead", ErrDateBeyondHorizon, horizonDays)
	}

	return nil
}
