package check_window

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetOccupyingByProviderAndRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Mirror the repository's overlap filter.
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.Overlaps(from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeProviderClient struct {
	err error
}

func (f *fakeProviderClient) GetProvider(_ context.Context, id int64) (*providerClient.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &providerClient.Provider{ID: id, Timezone: "UTC"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func confirmedBooking(startHour, startMin, endHour, endMin int) *domain.Booking {
	return &domain.Booking{
		ID:         1,
		ProviderID: 10,
		StartAt:    day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		EndAt:      day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
		Status:     domain.StatusConfirmed,
	}
}

func TestExecute_WindowBetweenBookingsIsFree(t *testing.T) {
	// Bookings 10:00-11:30 and 12:15-13:00; the gap 11:30-12:15 is free even
	// though no hourly slot grid would ever offer it.
	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			confirmedBooking(10, 0, 11, 30),
			confirmedBooking(12, 15, 13, 0),
		}},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Start:      day.Add(11*time.Hour + 30*time.Minute),
		End:        day.Add(12*time.Hour + 15*time.Minute),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsFree)
	assert.Equal(t, 0, resp.ConflictCount)
}

func TestExecute_OverlappingBookingConflicts(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			confirmedBooking(10, 0, 11, 0),
		}},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Start:      day.Add(10*time.Hour + 30*time.Minute),
		End:        day.Add(11*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsFree)
	assert.Equal(t, 1, resp.ConflictCount)
}

func TestExecute_TouchingBoundaryIsNotAConflict(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			confirmedBooking(10, 0, 11, 0),
		}},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Start:      day.Add(11 * time.Hour),
		End:        day.Add(12 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, resp.IsFree)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeProviderClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Start:      day.Add(12 * time.Hour),
		End:        day.Add(11 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	// Zero-length windows are rejected too.
	_, err = uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Start:      day.Add(12 * time.Hour),
		End:        day.Add(12 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeProviderClient{err: providerClient.ErrProviderNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 99,
		Start:      day.Add(10 * time.Hour),
		End:        day.Add(11 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_BookingStoreUnavailable(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{err: errors.New("connection refused")},
		&fakeProviderClient{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Start:      day.Add(10 * time.Hour),
		End:        day.Add(11 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrBookingStoreUnavailable)
}
