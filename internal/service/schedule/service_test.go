package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	storage "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
	"github.com/m-orlv/STB-AvailabilityService/pkg/ptr"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

type fakeScheduleRepo struct {
	existing       *domain.DailyTemplate
	hasEnabled     bool
	created        *domain.DailyTemplate
	updated        *domain.DailyTemplate
	deletedID      int64
	upserted       *domain.DateOverride
	deletedDate    string
	replacedBreaks []domain.TemplateBreak
}

func (f *fakeScheduleRepo) CreateTemplate(_ context.Context, tmpl *domain.DailyTemplate) (*domain.DailyTemplate, error) {
	out := *tmpl
	out.ID = 42
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeScheduleRepo) GetTemplateByID(_ context.Context, id int64) (*domain.DailyTemplate, error) {
	if f.existing == nil || f.existing.ID != id {
		return nil, storage.ErrTemplateNotFound
	}
	return f.existing, nil
}

func (f *fakeScheduleRepo) GetTemplatesByProvider(_ context.Context, _ int64) ([]*domain.DailyTemplate, error) {
	if f.existing == nil {
		return []*domain.DailyTemplate{}, nil
	}
	return []*domain.DailyTemplate{f.existing}, nil
}

func (f *fakeScheduleRepo) HasEnabledTemplateForWeekday(_ context.Context, _ int64, _ int, _ *int64) (bool, error) {
	return f.hasEnabled, nil
}

func (f *fakeScheduleRepo) UpdateTemplate(_ context.Context, id int64, tmpl *domain.DailyTemplate) (*domain.DailyTemplate, error) {
	out := *tmpl
	out.ID = id
	out.ProviderID = f.existing.ProviderID
	out.UpdatedAt = time.Now()
	f.updated = &out
	return &out, nil
}

func (f *fakeScheduleRepo) ReplaceTemplateBreaks(_ context.Context, _ int64, breaks []domain.TemplateBreak) ([]domain.TemplateBreak, error) {
	f.replacedBreaks = breaks
	return breaks, nil
}

func (f *fakeScheduleRepo) DeleteTemplate(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

func (f *fakeScheduleRepo) UpsertOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	out := *override
	out.ID = 7
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.upserted = &out
	return &out, nil
}

func (f *fakeScheduleRepo) GetOverridesByProviderAndRange(_ context.Context, _ int64, _, _ string) ([]*domain.DateOverride, error) {
	return []*domain.DateOverride{}, nil
}

func (f *fakeScheduleRepo) DeleteOverride(_ context.Context, _ int64, date string) error {
	f.deletedDate = date
	return nil
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

type notification struct {
	kind      string
	dayOfWeek int
	date      string
}

type fakeCoordinator struct {
	notifications []notification
}

func (f *fakeCoordinator) OnTemplateChanged(_ context.Context, _ int64, dayOfWeek int) {
	f.notifications = append(f.notifications, notification{kind: "template", dayOfWeek: dayOfWeek})
}

func (f *fakeCoordinator) OnOverrideChanged(_ context.Context, _ int64, date string) {
	f.notifications = append(f.notifications, notification{kind: "override", date: date})
}

// fakeTxManager runs the function directly; transactional semantics are the
// real managers' concern.
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeScheduleRepo, coordinator *fakeCoordinator) *Service {
	return NewService(repo, &fakeProviderClient{}, coordinator, fakeTxManager{}, nopLogger{})
}

func validCreateRequest() *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		ProviderID: 10,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "17:00",
		IsEnabled:  true,
		Breaks: []models.BreakRequest{
			{StartTime: "12:00", EndTime: "13:00", Label: ptr.Ptr("lunch")},
		},
	}
}

func TestCreateTemplate_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	resp, err := svc.CreateTemplate(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 1, resp.DayOfWeek)
	require.Len(t, coordinator.notifications, 1)
	assert.Equal(t, "template", coordinator.notifications[0].kind)
	assert.Equal(t, 1, coordinator.notifications[0].dayOfWeek)
}

func TestCreateTemplate_DuplicateRejected(t *testing.T) {
	repo := &fakeScheduleRepo{hasEnabled: true}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	_, err := svc.CreateTemplate(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrDuplicateTemplate)
	assert.Nil(t, repo.created)
	assert.Empty(t, coordinator.notifications)
}

func TestCreateTemplate_DisabledSkipsDuplicateCheckAndNotification(t *testing.T) {
	repo := &fakeScheduleRepo{hasEnabled: true}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	req := validCreateRequest()
	req.IsEnabled = false

	_, err := svc.CreateTemplate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, coordinator.notifications, "a disabled template changes no availability")
}

func TestCreateTemplate_InvertedWindow(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	req := validCreateRequest()
	req.StartTime = "17:00"
	req.EndTime = "09:00"
	req.Breaks = nil

	_, err := svc.CreateTemplate(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCreateTemplate_BreakOutsideWindow(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	req := validCreateRequest()
	req.Breaks = []models.BreakRequest{{StartTime: "08:00", EndTime: "08:30"}}

	_, err := svc.CreateTemplate(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTemplate_InvalidWeekday(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	req := validCreateRequest()
	req.DayOfWeek = 7

	_, err := svc.CreateTemplate(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTemplate_ProviderNotFound(t *testing.T) {
	svc := NewService(
		&fakeScheduleRepo{},
		&fakeProviderClient{err: providerClient.ErrProviderNotFound},
		&fakeCoordinator{},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := svc.CreateTemplate(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestUpdateTemplate_WeekdayMoveNotifiesBothDays(t *testing.T) {
	repo := &fakeScheduleRepo{
		existing: &domain.DailyTemplate{
			ID:         42,
			ProviderID: 10,
			DayOfWeek:  1,
			StartTime:  "09:00",
			EndTime:    "17:00",
			IsEnabled:  true,
		},
	}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	_, err := svc.UpdateTemplate(context.Background(), 42, &models.UpdateTemplateRequest{
		ProviderID: 10,
		DayOfWeek:  3,
		StartTime:  "10:00",
		EndTime:    "16:00",
		IsEnabled:  true,
	})
	require.NoError(t, err)

	require.Len(t, coordinator.notifications, 2)
	assert.Equal(t, 1, coordinator.notifications[0].dayOfWeek)
	assert.Equal(t, 3, coordinator.notifications[1].dayOfWeek)
}

func TestUpdateTemplate_WrongProvider(t *testing.T) {
	repo := &fakeScheduleRepo{
		existing: &domain.DailyTemplate{ID: 42, ProviderID: 99, DayOfWeek: 1, IsEnabled: true},
	}
	svc := newTestService(repo, &fakeCoordinator{})

	_, err := svc.UpdateTemplate(context.Background(), 42, &models.UpdateTemplateRequest{
		ProviderID: 10,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "17:00",
		IsEnabled:  true,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateTemplate_NotFound(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	_, err := svc.UpdateTemplate(context.Background(), 404, &models.UpdateTemplateRequest{
		ProviderID: 10,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "17:00",
		IsEnabled:  true,
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeleteTemplate_NotifiesWeekday(t *testing.T) {
	repo := &fakeScheduleRepo{
		existing: &domain.DailyTemplate{
			ID: 42, ProviderID: 10, DayOfWeek: 5,
			StartTime: "09:00", EndTime: "17:00", IsEnabled: true,
		},
	}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	require.NoError(t, svc.DeleteTemplate(context.Background(), 10, 42))

	assert.Equal(t, int64(42), repo.deletedID)
	require.Len(t, coordinator.notifications, 1)
	assert.Equal(t, 5, coordinator.notifications[0].dayOfWeek)
}

func TestUpsertOverride_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	resp, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		ProviderID: 10,
		Date:       "2026-03-02",
		StartTime:  ptr.Ptr(types.TimeString("10:00")),
		EndTime:    ptr.Ptr(types.TimeString("14:00")),
		Reason:     ptr.Ptr("short day"),
	})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	require.Len(t, coordinator.notifications, 1)
	assert.Equal(t, "override", coordinator.notifications[0].kind)
	assert.Equal(t, "2026-03-02", coordinator.notifications[0].date)
}

func TestUpsertOverride_ClosedAllDay(t *testing.T) {
	repo := &fakeScheduleRepo{}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	resp, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		ProviderID: 10,
		Date:       "2026-03-02",
		Reason:     ptr.Ptr("public holiday"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Closed)
}

func TestUpsertOverride_OneSidedBoundsRejected(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	_, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		ProviderID: 10,
		Date:       "2026-03-02",
		StartTime:  ptr.Ptr(types.TimeString("10:00")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertOverride_ClosedDayWithBreaksRejected(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	_, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		ProviderID: 10,
		Date:       "2026-03-02",
		Breaks:     []models.BreakRequest{{StartTime: "12:00", EndTime: "13:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteOverride_NotifiesDate(t *testing.T) {
	repo := &fakeScheduleRepo{}
	coordinator := &fakeCoordinator{}
	svc := newTestService(repo, coordinator)

	require.NoError(t, svc.DeleteOverride(context.Background(), 10, "2026-03-02"))

	assert.Equal(t, "2026-03-02", repo.deletedDate)
	require.Len(t, coordinator.notifications, 1)
	assert.Equal(t, "2026-03-02", coordinator.notifications[0].date)
}

func TestListOverrides_InvertedRangeRejected(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeCoordinator{})

	_, err := svc.ListOverrides(context.Background(), 10, "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
