package decline_booking

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
	booking   *domain.Booking
	updateErr error

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
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	return f.company, nil
}

type fakeNotifier struct {
	events []events.Event
}

func (f *fakeNotifier) Notify(_ context.Context, e events.Event) {
	f.events = append(f.events, e)
}

type fakeMetrics struct {
	transitions []string
}

func (f *fakeMetrics) IncTransition(from, to string) {
	f.transitions = append(f.transitions, from+"->"+to)
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

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            81,
		CompanyID:     1,
		CustomerID:    3,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPaid,
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

func TestDeclineBooking(t *testing.T) {
	repo := &fakeRepo{booking: pendingBooking()}
	uc, notifier, metrics := newUseCase(repo)

	out, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDeclined, out.Booking.Status)
	assert.True(t, repo.updated)
	assert.Equal(t, domain.StatusPending, repo.gotExpected)
	assert.Equal(t, domain.StatusDeclined, repo.gotNext)
	assert.Equal(t, []string{"pending->declined"}, metrics.transitions)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, events.KindBookingDeclined, notifier.events[0].Kind)
}

func TestDeclinePaymentGate(t *testing.T) {
	for _, ps := range []domain.PaymentStatus{
		domain.PaymentOpen,
		domain.PaymentFailed,
		domain.PaymentCanceled,
		domain.PaymentExpired,
	} {
		t.Run(string(ps), func(t *testing.T) {
			b := pendingBooking()
			b.PaymentStatus = ps
			repo := &fakeRepo{booking: b}
			uc, notifier, _ := newUseCase(repo)

			_, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
			require.ErrorIs(t, err, ErrPaymentNotSettled)
			assert.False(t, repo.updated)
			assert.Empty(t, notifier.events)
		})
	}
}

func TestDeclineRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *domain.Booking)
		bookingID int64
		managerID int64
		wantErr   error
	}{
		{
			name:      "already confirmed",
			mutate:    func(b *domain.Booking) { b.Status = domain.StatusConfirmed },
			bookingID: 81,
			managerID: 8,
			wantErr:   ErrWrongState,
		},
		{
			name:      "already cancelled",
			mutate:    func(b *domain.Booking) { b.Status = domain.StatusCancelled },
			bookingID: 81,
			managerID: 8,
			wantErr:   ErrWrongState,
		},
		{
			name:      "unknown booking",
			mutate:    func(*domain.Booking) {},
			bookingID: 404,
			managerID: 8,
			wantErr:   ErrBookingNotFound,
		},
		{
			name:      "not a manager",
			mutate:    func(*domain.Booking) {},
			bookingID: 81,
			managerID: 42,
			wantErr:   ErrAccessDenied,
		},
		{
			name:      "zero manager id",
			mutate:    func(*domain.Booking) {},
			bookingID: 81,
			managerID: 0,
			wantErr:   ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pendingBooking()
			tt.mutate(b)
			repo := &fakeRepo{booking: b}
			uc, notifier, _ := newUseCase(repo)

			_, err := uc.Execute(context.Background(), Request{BookingID: tt.bookingID, ManagerID: tt.managerID})
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, repo.updated)
			assert.Empty(t, notifier.events)
		})
	}
}

func TestDeclineStaleState(t *testing.T) {
	repo := &fakeRepo{booking: pendingBooking(), updateErr: booking.ErrStaleState}
	uc, notifier, _ := newUseCase(repo)

	_, err := uc.Execute(context.Background(), Request{BookingID: 81, ManagerID: 8})
	require.ErrorIs(t, err, ErrStaleState)
	assert.Empty(t, notifier.events)
}
