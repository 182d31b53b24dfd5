package check_window

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
)

// UseCase answers "is this specific proposed window free?" by half-open
// overlap against occupying bookings, independent of slot granularity and
// breaks.
//
// It deliberately does NOT check that the window falls inside the effective
// working hours or avoids breaks — callers that must reject outside-hours
// bookings combine this with the effective-config resolution. Nor does it
// guarantee mutual exclusion: two concurrent callers can both see a window as
// free, and the booking writer enforces at-most-one-booking-per-window at
// commit time.
type UseCase struct {
	bookingRepo    BookingRepository
	providerClient ProviderServiceClient
	logger         Logger
}

// NewUseCase builds the window-check usecase.
func NewUseCase(
	bookingRepo BookingRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		providerClient: providerClient,
		logger:         logger,
	}
}

// Execute checks the proposed window for booking conflicts.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckWindow: provider=%d, start=%s, end=%s",
		req.ProviderID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Validate the request.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckWindow: validation failed: %v", err)
		return nil, err
	}

	// 2. Confirm the provider exists.
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("CheckWindow: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CheckWindow: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Fetch occupying bookings overlapping the window. The repository
	// already applies the half-open overlap condition; any rows returned
	// are conflicts.
	bookings, err := uc.bookingRepo.GetOccupyingByProviderAndRange(ctx, req.ProviderID, req.Start, req.End)
	if err != nil {
		uc.logger.Error("CheckWindow: booking store unreachable for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrBookingStoreUnavailable, err)
	}

	conflicts := 0
	for _, b := range bookings {
		if b.IsOccupying() && b.Overlaps(req.Start, req.End) {
			conflicts++
		}
	}

	uc.logger.Info("CheckWindow: provider=%d window=%s..%s conflicts=%d",
		req.ProviderID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), conflicts)

	return &Response{
		ProviderID:    req.ProviderID,
		Start:         req.Start,
		End:           req.End,
		IsFree:        conflicts == 0,
		ConflictCount: conflicts,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return ErrInvalidWindow
	}
	return nil
}
