package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
)

type fakeRepo struct {
	booking *domain.Booking

	gotPaymentStatus domain.PaymentStatus
	paymentUpdated   bool
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, booking.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeRepo) GetByCustomerID(_ context.Context, customerID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.booking != nil && f.booking.CustomerID == customerID {
		return []*domain.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	if f.booking != nil && f.booking.CompanyID == filter.CompanyID {
		return []*domain.Booking{f.booking}, nil
	}
	return nil, nil
}

func (f *fakeRepo) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	if f.booking == nil || f.booking.ID != id {
		return booking.ErrBookingNotFound
	}
	f.paymentUpdated = true
	f.gotPaymentStatus = status
	f.booking.PaymentStatus = status
	return nil
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

type fakeTxManager struct {
	readOnlyCalls int
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            11,
		CompanyID:     1,
		CustomerID:    3,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentOpen,
	}
}

func newService(repo *fakeRepo) *Service {
	return New(repo, &fakeTxManager{}, &fakeCompanyClient{
		company: &companyservice.Company{ID: 1, ManagerIDs: []int64{8}},
	}, nopLogger{})
}

func TestGetByIDAccess(t *testing.T) {
	tests := []struct {
		name    string
		actorID int64
		role    domain.ActorRole
		wantErr error
	}{
		{"owning customer", 3, domain.RoleCustomer, nil},
		{"company manager", 8, domain.RoleCompany, nil},
		{"foreign customer", 42, domain.RoleCustomer, ErrAccessDenied},
		{"non-manager", 42, domain.RoleCompany, ErrAccessDenied},
		{"unknown role", 3, domain.ActorRole("admin"), ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&fakeRepo{booking: testBooking()})

			b, err := svc.GetByID(context.Background(), 11, tt.actorID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(11), b.ID)
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.GetByID(context.Background(), 11, 3, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestApplyPaymentStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.PaymentStatus
		wantErr error
	}{
		{"canonical paid", "paid", domain.PaymentPaid, nil},
		{"provider alias settled", "settled", domain.PaymentPaid, nil},
		{"provider alias with case", "  Succeeded ", domain.PaymentPaid, nil},
		{"failed", "failed", domain.PaymentFailed, nil},
		{"unknown status rejected", "wat", "", ErrUnknownPaymentStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{booking: testBooking()}
			svc := newService(repo)

			err := svc.ApplyPaymentStatus(context.Background(), 11, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, repo.paymentUpdated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, repo.gotPaymentStatus)
		})
	}
}

func TestApplyPaymentStatusOnTerminalBooking(t *testing.T) {
	// Возврат приходит после отмены: обновление применяется и к финальным
	b := testBooking()
	b.Status = domain.StatusCancelledWithFee
	repo := &fakeRepo{booking: b}
	svc := newService(repo)

	err := svc.ApplyPaymentStatus(context.Background(), 11, "canceled")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCanceled, repo.gotPaymentStatus)
}

func TestListingsRunReadOnly(t *testing.T) {
	// Списки читаются внутри read-only транзакции
	txm := &fakeTxManager{}
	svc := New(&fakeRepo{booking: testBooking()}, txm, &fakeCompanyClient{
		company: &companyservice.Company{ID: 1, ManagerIDs: []int64{8}},
	}, nopLogger{})

	_, err := svc.GetCustomerBookings(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, txm.readOnlyCalls)

	_, err = svc.GetCompanyBookings(context.Background(), 8, domain.CompanyBookingsFilter{CompanyID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, txm.readOnlyCalls)
}

func TestGetCompanyBookingsRequiresManager(t *testing.T) {
	svc := newService(&fakeRepo{booking: testBooking()})

	_, err := svc.GetCompanyBookings(context.Background(), 42, domain.CompanyBookingsFilter{CompanyID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	list, err := svc.GetCompanyBookings(context.Background(), 8, domain.CompanyBookingsFilter{CompanyID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
