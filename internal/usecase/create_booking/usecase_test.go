package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
)

type fakeRepo struct {
	dayBookings []*domain.Booking

	created *domain.Booking
}

func (f *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	copied := *b
	copied.ID = 100
	f.created = &copied
	return &copied, nil
}

func (f *fakeRepo) GetByStaffAndDate(_ context.Context, _ domain.StaffDayFilter) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePolicyResolver struct {
	minLeadMinutes int
}

func (f *fakePolicyResolver) Resolve(_ context.Context, companyID int64, _ *int64) (*domain.CompanySchedulingPolicy, error) {
	p := domain.DefaultSchedulingPolicy(companyID)
	p.MinLeadMinutes = f.minLeadMinutes
	return p, nil
}

type fakeCompanyClient struct {
	service *companyservice.Service
	err     error
}

func (f *fakeCompanyClient) GetService(_ context.Context, _, _ int64) (*companyservice.Service, error) {
	return f.service, f.err
}

type fakeStaffClient struct {
	schedule *staffservice.DaySchedule
	err      error
}

func (f *fakeStaffClient) GetDaySchedule(_ context.Context, _, _ int64, _ string) (*staffservice.DaySchedule, error) {
	return f.schedule, f.err
}

type fakeNotifier struct {
	events []events.Event
}

func (f *fakeNotifier) Notify(_ context.Context, e events.Event) {
	f.events = append(f.events, e)
}

type fakeMetrics struct {
	transitions        []string
	capacityRejections int
}

func (f *fakeMetrics) IncTransition(from, to string) {
	f.transitions = append(f.transitions, from+"->"+to)
}

func (f *fakeMetrics) IncCapacityRejection() {
	f.capacityRejections++
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var (
	day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now = day.Add(8 * time.Hour)
)

func massage() *companyservice.Service {
	return &companyservice.Service{
		ID:              4,
		CompanyID:       1,
		Name:            "Массаж",
		DurationMin:     60,
		BufferBeforeMin: 10,
		BufferAfterMin:  15,
		Capacity:        1,
		PriceCents:      5000,
		StaffIDs:        []int64{2},
	}
}

func fullDay() *staffservice.DaySchedule {
	return &staffservice.DaySchedule{
		StaffID:       2,
		Date:          "2026-03-10",
		IsWorking:     true,
		WorkIntervals: []staffservice.WorkInterval{{Start: "09:00", End: "18:00"}},
	}
}

func newUseCase(repo *fakeRepo, svc *companyservice.Service, schedule *staffservice.DaySchedule) (*UseCase, *fakeNotifier, *fakeMetrics) {
	notifier := &fakeNotifier{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(
		repo,
		fakeTxManager{},
		&fakePolicyResolver{minLeadMinutes: 60},
		&fakeCompanyClient{service: svc},
		&fakeStaffClient{schedule: schedule},
		notifier,
		metrics,
		fixedClock{now: now},
		nopLogger{},
	)
	return uc, notifier, metrics
}

func validIn() Request {
	return Request{
		CustomerID: 3,
		CompanyID:  1,
		ServiceID:  4,
		StaffID:    2,
		StartAtMs:  day.Add(14 * time.Hour).UnixMilli(),
	}
}

func TestCreateBooking(t *testing.T) {
	repo := &fakeRepo{}
	uc, notifier, metrics := newUseCase(repo, massage(), fullDay())

	out, err := uc.Execute(context.Background(), validIn())
	require.NoError(t, err)

	b := out.Booking
	assert.Equal(t, int64(100), b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.PaymentOpen, b.PaymentStatus)
	assert.Equal(t, "2026-03-10", b.BookingDate)

	// Снапшот услуги скопирован в бронирование
	assert.Equal(t, "Массаж", b.ServiceName)
	assert.Equal(t, 60, b.ServiceDurationMin)
	assert.Equal(t, int64(5000), b.ServicePriceCents)
	assert.Equal(t, int64(5000), b.AmountCents)

	// Занятый интервал расширен буферами 10/15
	start := day.Add(14 * time.Hour)
	assert.Equal(t, start.UnixMilli(), b.StartAtMs)
	assert.Equal(t, start.Add(time.Hour).UnixMilli(), b.EndAtMs)
	assert.Equal(t, start.Add(-10*time.Minute).UnixMilli(), b.OccupiedStartAtMs)
	assert.Equal(t, start.Add(75*time.Minute).UnixMilli(), b.OccupiedEndAtMs)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, events.KindBookingRequested, notifier.events[0].Kind)
	assert.Equal(t, []string{"new->pending"}, metrics.transitions)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	start := day.Add(14 * time.Hour)
	repo := &fakeRepo{dayBookings: []*domain.Booking{{
		ID:                9,
		Status:            domain.StatusConfirmed,
		OccupiedStartAtMs: start.UnixMilli(),
		OccupiedEndAtMs:   start.Add(time.Hour).UnixMilli(),
	}}}
	uc, notifier, metrics := newUseCase(repo, massage(), fullDay())

	_, err := uc.Execute(context.Background(), validIn())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
	assert.Empty(t, notifier.events)
	assert.Equal(t, 1, metrics.capacityRejections)
}

func TestCreateBookingCancelledDoesNotBlock(t *testing.T) {
	start := day.Add(14 * time.Hour)
	repo := &fakeRepo{dayBookings: []*domain.Booking{{
		ID:                9,
		Status:            domain.StatusCancelled,
		OccupiedStartAtMs: start.UnixMilli(),
		OccupiedEndAtMs:   start.Add(time.Hour).UnixMilli(),
	}}}
	uc, _, _ := newUseCase(repo, massage(), fullDay())

	_, err := uc.Execute(context.Background(), validIn())
	assert.NoError(t, err)
	assert.NotNil(t, repo.created)
}

func TestCreateBookingLeadTime(t *testing.T) {
	uc, _, _ := newUseCase(&fakeRepo{}, massage(), fullDay())

	in := validIn()
	in.StartAtMs = now.Add(30 * time.Minute).UnixMilli() // горизонт час
	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, ErrLeadTimeViolation)
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	tests := []struct {
		name     string
		schedule *staffservice.DaySchedule
		startAt  time.Time
	}{
		{
			name:     "day off",
			schedule: &staffservice.DaySchedule{IsWorking: false},
			startAt:  day.Add(14 * time.Hour),
		},
		{
			name: "before opening",
			schedule: &staffservice.DaySchedule{
				IsWorking:     true,
				WorkIntervals: []staffservice.WorkInterval{{Start: "11:00", End: "18:00"}},
			},
			startAt: day.Add(10 * time.Hour),
		},
		{
			name: "tail does not fit with buffer",
			// Окно до 15:00: визит 14:00-15:00 плюс буфер 15 не помещается
			schedule: &staffservice.DaySchedule{
				IsWorking:     true,
				WorkIntervals: []staffservice.WorkInterval{{Start: "09:00", End: "15:00"}},
			},
			startAt: day.Add(14 * time.Hour),
		},
		{
			name: "blocked period",
			schedule: &staffservice.DaySchedule{
				IsWorking:      true,
				WorkIntervals:  []staffservice.WorkInterval{{Start: "09:00", End: "18:00"}},
				BlockedPeriods: []staffservice.BlockedPeriod{{Start: "14:30", End: "15:00"}},
			},
			startAt: day.Add(14 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			uc, _, _ := newUseCase(repo, massage(), tt.schedule)

			in := validIn()
			in.StartAtMs = tt.startAt.UnixMilli()

			_, err := uc.Execute(context.Background(), in)
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreateBookingStaffNotPerforming(t *testing.T) {
	svc := massage()
	svc.StaffIDs = []int64{555}
	uc, _, _ := newUseCase(&fakeRepo{}, svc, fullDay())

	_, err := uc.Execute(context.Background(), validIn())
	assert.ErrorIs(t, err, ErrStaffNotPerforming)
}

func TestCreateBookingServiceNotFound(t *testing.T) {
	notifier := &fakeNotifier{}
	uc := NewUseCase(
		&fakeRepo{},
		fakeTxManager{},
		&fakePolicyResolver{},
		&fakeCompanyClient{err: companyservice.ErrServiceNotFound},
		&fakeStaffClient{},
		notifier,
		&fakeMetrics{},
		fixedClock{now: now},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validIn())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateBookingValidation(t *testing.T) {
	uc, _, _ := newUseCase(&fakeRepo{}, massage(), fullDay())

	in := validIn()
	in.CustomerID = 0
	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)

	in = validIn()
	long := make([]byte, domain.MaxNoteLength+1)
	note := string(long)
	in.Note = &note
	_, err = uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
}
