package get_effective_config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	"github.com/m-orlv/STB-AvailabilityService/pkg/ptr"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

type fakeScheduleRepo struct {
	override *domain.DateOverride
	tmpl     *domain.DailyTemplate
}

func (f *fakeScheduleRepo) GetOverrideByProviderAndDate(_ context.Context, _ int64, _ string) (*domain.DateOverride, error) {
	if f.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

func (f *fakeScheduleRepo) GetEnabledTemplateForWeekday(_ context.Context, _ int64, _ int) (*domain.DailyTemplate, error) {
	if f.tmpl == nil {
		return nil, scheduleRepo.ErrTemplateNotFound
	}
	return f.tmpl, nil
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

// 2026-03-02 is a Monday.
const mondayKey = "2026-03-02"

func storedMondayTemplate() *domain.DailyTemplate {
	return &domain.DailyTemplate{
		ID:         1,
		ProviderID: 10,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "17:00",
		IsEnabled:  true,
	}
}

func TestExecute_ResolvesStoredTemplate(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{tmpl: storedMondayTemplate()},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 10, Date: mondayKey})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, domain.SourceTemplate, resp.Source)
}

func TestExecute_StoredOverrideWins(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{
			override: &domain.DateOverride{
				ProviderID: 10,
				Date:       mondayKey,
				StartTime:  ptr.Ptr(types.TimeString("11:00")),
				EndTime:    ptr.Ptr(types.TimeString("15:00")),
			},
			tmpl: storedMondayTemplate(),
		},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 10, Date: mondayKey})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
	assert.Equal(t, domain.SourceOverride, resp.Source)
}

func TestExecute_DraftOverridePreviewsWithoutStore(t *testing.T) {
	// The store has only the template; the draft override previews a
	// closure for the date without writing anything.
	uc := NewUseCase(
		&fakeScheduleRepo{tmpl: storedMondayTemplate()},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID:    10,
		Date:          mondayKey,
		DraftOverride: &DraftOverride{Reason: ptr.Ptr("maintenance")},
	})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Equal(t, domain.SourceOverride, resp.Source)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "maintenance", *resp.Reason)
}

func TestExecute_DraftTemplatePreviewsAgainstTemplateLayer(t *testing.T) {
	// A stored override exists, but a draft template edit previews the
	// template layer only: the result shows the draft, not the override.
	uc := NewUseCase(
		&fakeScheduleRepo{
			override: &domain.DateOverride{
				ProviderID: 10,
				Date:       mondayKey,
				StartTime:  ptr.Ptr(types.TimeString("11:00")),
				EndTime:    ptr.Ptr(types.TimeString("15:00")),
			},
		},
		&fakeProviderClient{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Date:       mondayKey,
		DraftTemplate: &DraftTemplate{
			StartTime: "08:00",
			EndTime:   "12:00",
			IsEnabled: true,
			Breaks: []DraftBreak{
				{StartTime: "10:00", EndTime: "10:30"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("08:00"), resp.StartTime)
	assert.Equal(t, domain.SourceTemplate, resp.Source)
	require.Len(t, resp.Breaks, 1)
}

func TestExecute_BothDraftsRejected(t *testing.T) {
	uc := NewUseCase(&fakeScheduleRepo{}, &fakeProviderClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID:    10,
		Date:          mondayKey,
		DraftOverride: &DraftOverride{},
		DraftTemplate: &DraftTemplate{StartTime: "09:00", EndTime: "17:00", IsEnabled: true},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{},
		&fakeProviderClient{err: providerClient.ErrProviderNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 99, Date: mondayKey})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_InvalidDraftTimeSurfaced(t *testing.T) {
	uc := NewUseCase(
		&fakeScheduleRepo{},
		&fakeProviderClient{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: 10,
		Date:       mondayKey,
		DraftTemplate: &DraftTemplate{
			StartTime: "9am",
			EndTime:   "17:00",
			IsEnabled: true,
		},
	})
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)
}
