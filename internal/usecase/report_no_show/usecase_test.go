package report_no_show

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
	booking *domain.Booking

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
	f.updated = true
	f.gotExpected = expected
	f.gotNext = next
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePolicyResolver struct {
	graceMinutes int
}

func (f *fakePolicyResolver) Resolve(_ context.Context, companyID int64, _ *int64) (*domain.CompanySchedulingPolicy, error) {
	p := domain.DefaultSchedulingPolicy(companyID)
	p.NoShowGraceMinutes = f.graceMinutes
	return p, nil
}

type fakeCompanyClient struct {
	company *companyservice.Company
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	if f.company == nil {
		return nil, companyservice.ErrCompanyNotFound
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

var start = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         41,
		CompanyID:  1,
		StaffID:    2,
		CustomerID: 3,
		ServiceID:  4,
		StartAtMs:  start.UnixMilli(),
		EndAtMs:    start.Add(time.Hour).UnixMilli(),
		Status:     domain.StatusConfirmed,
	}
}

func newUseCase(repo *fakeRepo, now time.Time) (*UseCase, *fakeNotifier) {
	notifier := &fakeNotifier{}
	uc := NewUseCase(
		repo,
		fakeTxManager{},
		&fakePolicyResolver{graceMinutes: 20},
		&fakeCompanyClient{company: &companyservice.Company{ID: 1, ManagerIDs: []int64{8}}},
		notifier,
		&fakeMetrics{},
		fixedClock{now: now},
		nopLogger{},
	)
	return uc, notifier
}

func TestReportNoShowGracePeriod(t *testing.T) {
	tests := []struct {
		name       string
		sinceStart time.Duration
		wantErr    error
	}{
		{"10 minutes after start is too early", 10 * time.Minute, ErrTooEarly},
		{"one minute before grace elapses", 19 * time.Minute, ErrTooEarly},
		{"exactly at grace boundary succeeds", 20 * time.Minute, nil},
		{"well past grace succeeds", 2 * time.Hour, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{booking: confirmedBooking()}
			uc, notifier := newUseCase(repo, start.Add(tt.sinceStart))

			out, err := uc.Execute(context.Background(), Request{BookingID: 41, ManagerID: 8})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, repo.updated)
				assert.Empty(t, notifier.events)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.StatusNoShow, out.Booking.Status)
			assert.Equal(t, domain.StatusConfirmed, repo.gotExpected)
			assert.Equal(t, domain.StatusNoShow, repo.gotNext)
			require.Len(t, notifier.events, 1)
			assert.Equal(t, events.KindNoShow, notifier.events[0].Kind)
		})
	}
}

func TestReportNoShowRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(b *domain.Booking)
		in      Request
		wantErr error
	}{
		{
			name:    "not a manager",
			prepare: func(b *domain.Booking) {},
			in:      Request{BookingID: 41, ManagerID: 99},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "pending booking",
			prepare: func(b *domain.Booking) { b.Status = domain.StatusPending },
			in:      Request{BookingID: 41, ManagerID: 8},
			wantErr: ErrWrongState,
		},
		{
			name:    "already checked in",
			prepare: func(b *domain.Booking) { b.Status = domain.StatusCheckedIn },
			in:      Request{BookingID: 41, ManagerID: 8},
			wantErr: ErrWrongState,
		},
		{
			name:    "not found",
			prepare: func(b *domain.Booking) {},
			in:      Request{BookingID: 404, ManagerID: 8},
			wantErr: ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := confirmedBooking()
			tt.prepare(b)
			repo := &fakeRepo{booking: b}
			uc, _ := newUseCase(repo, start.Add(time.Hour))

			_, err := uc.Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, repo.updated)
		})
	}
}
