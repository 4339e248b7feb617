package accept_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

type fakeRepo struct {
	booking     *domain.Booking
	dayBookings []*domain.Booking
	updateErr   error

	updated     bool
	gotExpected domain.BookingStatus
	gotNext     domain.BookingStatus
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, booking.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeRepo) GetByStaffAndDate(_ context.Context, _ domain.StaffDayFilter) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, expected, next domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = true
	f.gotExpected = expected
	f.gotNext = next
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCompanyClient struct {
	company *companyservice.Company
	err     error
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
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

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var acceptStart = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 81,
		CompanyID:          1,
		StaffID:            2,
		CustomerID:         3,
		ServiceID:          4,
		ServiceDurationMin: 60,
		ServiceCapacity:    1,
		BookingDate:        "2026-03-10",
		StartAtMs:          acceptStart.UnixMilli(),
		EndAtMs:            acceptStart.Add(time.Hour).UnixMilli(),
		OccupiedStartAtMs:  acceptStart.UnixMilli(),
		OccupiedEndAtMs:    acceptStart.Add(time.Hour).UnixMilli(),
		Status:             domain.StatusPending,
		PaymentStatus:      domain.PaymentPaid,
	}
}

func newUseCase(repo *fakeRepo) (*UseCase, *fakeNotifier, *fakeMetrics) {
	notifier := &fakeNotifier{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(
		repo,
		fakeTxManager{},
		&fakeCompanyClient{company: &companyservice.Company{ID: 1, ManagerIDs: []int64{8}}},
		notifier,
		metrics,
		fixedClock{now: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
	return uc, notifier, metrics
}

func TestAcceptBooking(t *testing.T) {
	repo := &fakeRepo{booking: pendingBooking()}
	uc, notifier, metrics := newUseCase(repo)

	out, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, out.Booking.Status)
	assert.True(t, repo.updated)
	assert.Equal(t, domain.StatusPending, repo.gotExpected)
	assert.Equal(t, domain.StatusConfirmed, repo.gotNext)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, events.KindBookingConfirmed, notifier.events[0].Kind)
	assert.Equal(t, domain.RoleCompany, notifier.events[0].ActorRole)
	assert.Equal(t, []string{"pending->confirmed"}, metrics.transitions)
}

func TestAcceptPaymentGate(t *testing.T) {
	// Подтвердить можно только оплаченное бронирование
	unsettled := []domain.PaymentStatus{
		domain.PaymentOpen, domain.PaymentFailed, domain.PaymentCanceled, domain.PaymentExpired,
	}

	for _, ps := range unsettled {
		t.Run(string(ps), func(t *testing.T) {
			b := pendingBooking()
			b.PaymentStatus = ps
			repo := &fakeRepo{booking: b}
			uc, notifier, _ := newUseCase(repo)

			_, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
			assert.ErrorIs(t, err, ErrPaymentNotSettled)
			assert.False(t, repo.updated)
			assert.Empty(t, notifier.events)
		})
	}
}

func TestAcceptRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(b *domain.Booking)
		in      Request
		wantErr error
	}{
		{
			name:    "not a manager",
			prepare: func(b *domain.Booking) {},
			in:      Request{BookingID: 81, ManagerID: 99},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "already confirmed",
			prepare: func(b *domain.Booking) { b.Status = domain.StatusConfirmed },
			in:      Request{BookingID: 81, ManagerID: 8},
			wantErr: ErrWrongState,
		},
		{
			name:    "cancelled",
			prepare: func(b *domain.Booking) { b.Status = domain.StatusCancelled },
			in:      Request{BookingID: 81, ManagerID: 8},
			wantErr: ErrWrongState,
		},
		{
			name:    "not found",
			prepare: func(b *domain.Booking) {},
			in:      Request{BookingID: 404, ManagerID: 8},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "invalid input",
			prepare: func(b *domain.Booking) {},
			in:      Request{BookingID: 81, ManagerID: 0},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pendingBooking()
			tt.prepare(b)
			repo := &fakeRepo{booking: b}
			uc, notifier, _ := newUseCase(repo)

			_, err := uc.Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, repo.updated)
			assert.Empty(t, notifier.events)
		})
	}
}

func TestAcceptSlotTakenMeanwhile(t *testing.T) {
	// Пока заявка ждала решения, время занял другой подтвержденный визит
	repo := &fakeRepo{
		booking: pendingBooking(),
		dayBookings: []*domain.Booking{{
			ID:                99,
			Status:            domain.StatusConfirmed,
			OccupiedStartAtMs: acceptStart.Add(30 * time.Minute).UnixMilli(),
			OccupiedEndAtMs:   acceptStart.Add(90 * time.Minute).UnixMilli(),
		}},
	}
	uc, notifier, metrics := newUseCase(repo)

	_, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.False(t, repo.updated)
	assert.Empty(t, notifier.events)
	assert.Equal(t, 1, metrics.capacityRejections)
}

func TestAcceptOwnIntervalIgnored(t *testing.T) {
	// Собственный pending интервал не считается конфликтом
	b := pendingBooking()
	repo := &fakeRepo{booking: b, dayBookings: []*domain.Booking{b}}
	uc, _, _ := newUseCase(repo)

	_, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
	assert.NoError(t, err)
	assert.True(t, repo.updated)
}

func TestAcceptStaleState(t *testing.T) {
	repo := &fakeRepo{booking: pendingBooking(), updateErr: booking.ErrStaleState}
	uc, notifier, _ := newUseCase(repo)

	_, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
	assert.ErrorIs(t, err, ErrStaleState)
	assert.Empty(t, notifier.events)
}
