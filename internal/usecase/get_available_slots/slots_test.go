package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func dayMs(minutes int) int64 {
	return testDay.UnixMilli() + domain.MinutesToMs(minutes)
}

func workingDay(intervals ...staffservice.WorkInterval) *staffservice.DaySchedule {
	return &staffservice.DaySchedule{
		StaffID:       7,
		Date:          "2026-03-10",
		IsWorking:     true,
		WorkIntervals: intervals,
	}
}

func slotKeys(slots []domain.BookingSlot) []string {
	keys := make([]string, 0, len(slots))
	for _, s := range slots {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestGenerateSlotsEmptyDay(t *testing.T) {
	// Услуга 30 минут с буферами 5/5, шаг 15: последний старт,
	// чей хвост с буфером помещается до 12:00, это 11:15
	svc := &companyservice.Service{
		Name:            "Массаж",
		DurationMin:     30,
		BufferBeforeMin: 5,
		BufferAfterMin:  5,
		Capacity:        1,
	}
	policy := &domain.CompanySchedulingPolicy{SlotStepMinutes: 15, MinLeadMinutes: 0}
	schedule := workingDay(staffservice.WorkInterval{Start: "09:00", End: "12:00"})

	slots, err := generateSlots(testDay, schedule, svc, policy, nil, dayMs(0))
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "2026-03-10T09:00", slots[0].Key)
	assert.Equal(t, "2026-03-10T11:15", slots[len(slots)-1].Key)
	assert.Len(t, slots, 10) // 09:00 .. 11:15 с шагом 15

	for _, s := range slots {
		assert.Equal(t, 1, s.RemainingCapacity)
		assert.Equal(t, 1, s.TotalCapacity)
	}
}

func TestGenerateSlotsAroundExistingBooking(t *testing.T) {
	// Бронирование 10:00-10:30 занимает мастера 09:55-10:35.
	// Кандидат 10:15 (занятость 10:10-10:45) пересекается и исключен,
	// кандидат 10:35 (занятость 10:30-11:05) пересекается, первый
	// свободный после брони это 10:40 (занятость 10:35-11:10)
	svc := &companyservice.Service{
		Name:            "Массаж",
		DurationMin:     30,
		BufferBeforeMin: 5,
		BufferAfterMin:  5,
		Capacity:        1,
	}
	policy := &domain.CompanySchedulingPolicy{SlotStepMinutes: 5, MinLeadMinutes: 0}
	schedule := workingDay(staffservice.WorkInterval{Start: "09:00", End: "12:00"})
	existing := []*domain.Booking{{
		ID:                1,
		Status:            domain.StatusConfirmed,
		StartAtMs:         dayMs(600),
		EndAtMs:           dayMs(630),
		OccupiedStartAtMs: dayMs(595),
		OccupiedEndAtMs:   dayMs(635),
	}}

	slots, err := generateSlots(testDay, schedule, svc, policy, existing, dayMs(0))
	require.NoError(t, err)

	keys := slotKeys(slots)
	assert.NotContains(t, keys, "2026-03-10T10:15")
	assert.NotContains(t, keys, "2026-03-10T10:00")
	assert.NotContains(t, keys, "2026-03-10T10:35")
	assert.Contains(t, keys, "2026-03-10T10:40", "half-open boundary: occupied start at existing occupied end is free")
	assert.Contains(t, keys, "2026-03-10T09:00")
}

func TestGenerateSlotsCapacityTwo(t *testing.T) {
	svc := &companyservice.Service{
		Name:        "Групповая тренировка",
		DurationMin: 60,
		Capacity:    2,
	}
	policy := &domain.CompanySchedulingPolicy{SlotStepMinutes: 60, MinLeadMinutes: 0}
	schedule := workingDay(staffservice.WorkInterval{Start: "10:00", End: "12:00"})
	existing := []*domain.Booking{{
		ID:                1,
		Status:            domain.StatusPending,
		StartAtMs:         dayMs(600),
		EndAtMs:           dayMs(660),
		OccupiedStartAtMs: dayMs(600),
		OccupiedEndAtMs:   dayMs(660),
	}}

	slots, err := generateSlots(testDay, schedule, svc, policy, existing, dayMs(0))
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "2026-03-10T10:00", slots[0].Key)
	assert.Equal(t, 1, slots[0].RemainingCapacity, "one of two seats is taken")
	assert.Equal(t, 2, slots[1].RemainingCapacity)
	assert.True(t, slots[0].IsPartiallyBooked())
}

func TestGenerateSlotsMinLead(t *testing.T) {
	svc := &companyservice.Service{Name: "Стрижка", DurationMin: 30, Capacity: 1}
	policy := &domain.CompanySchedulingPolicy{SlotStepMinutes: 30, MinLeadMinutes: 60}
	schedule := workingDay(staffservice.WorkInterval{Start: "09:00", End: "12:00"})

	// Сейчас 09:10, горизонт час: первый допустимый старт 10:30
	slots, err := generateSlots(testDay, schedule, svc, policy, nil, dayMs(550))
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "2026-03-10T10:30", slots[0].Key)
}

func TestGenerateSlotsBlockedPeriod(t *testing.T) {
	svc := &companyservice.Service{Name: "Стрижка", DurationMin: 30, Capacity: 1}
	policy := &domain.CompanySchedulingPolicy{SlotStepMinutes: 30, MinLeadMinutes: 0}
	schedule := workingDay(staffservice.WorkInterval{Start: "09:00", End: "12:00"})
	schedule.BlockedPeriods = []staffservice.BlockedPeriod{{Start: "10:00", End: "11:00", Reason: "обед"}}

	slots, err := generateSlots(testDay, schedule, svc, policy, nil, dayMs(0))
	require.NoError(t, err)

	keys := slotKeys(slots)
	assert.Contains(t, keys, "2026-03-10T09:00")
	assert.Contains(t, keys, "2026-03-10T09:30")
	assert.NotContains(t, keys, "2026-03-10T10:00")
	assert.NotContains(t, keys, "2026-03-10T10:30")
	assert.Contains(t, keys, "2026-03-10T11:00")
}

func TestGenerateSlotsNonWorkingDay(t *testing.T) {
	svc := &companyservice.Service{Name: "Стрижка", DurationMin: 30, Capacity: 1}
	policy := &domain.CompanySchedulingPolicy{SlotStepMinutes: 30}
	schedule := &staffservice.DaySchedule{IsWorking: false}

	slots, err := generateSlots(testDay, schedule, svc, policy, nil, dayMs(0))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

type fakeSlotsRepo struct {
	bookings []*domain.Booking
}

func (f *fakeSlotsRepo) GetByStaffAndDate(_ context.Context, _ domain.StaffDayFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakePolicyResolver struct {
	policy *domain.CompanySchedulingPolicy
}

func (f *fakePolicyResolver) Resolve(_ context.Context, companyID int64, _ *int64) (*domain.CompanySchedulingPolicy, error) {
	if f.policy != nil {
		return f.policy, nil
	}
	return domain.DefaultSchedulingPolicy(companyID), nil
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

func TestHandleStaffNotPerforming(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotsRepo{},
		&fakePolicyResolver{},
		&fakeCompanyClient{service: &companyservice.Service{ID: 4, DurationMin: 30, Capacity: 1, StaffIDs: []int64{100}}},
		&fakeStaffClient{schedule: workingDay()},
		fixedClock{now: testDay},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{CompanyID: 1, ServiceID: 4, StaffID: 7, Date: "2026-03-10"})
	assert.ErrorIs(t, err, ErrStaffNotPerforming)
}

func TestHandleValidation(t *testing.T) {
	uc := NewUseCase(&fakeSlotsRepo{}, &fakePolicyResolver{}, &fakeCompanyClient{}, &fakeStaffClient{}, fixedClock{now: testDay}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{CompanyID: 0, ServiceID: 4, StaffID: 7, Date: "2026-03-10"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.Execute(context.Background(), Request{CompanyID: 1, ServiceID: 4, StaffID: 7, Date: "10.03.2026"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHandleServiceNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotsRepo{},
		&fakePolicyResolver{},
		&fakeCompanyClient{err: companyservice.ErrServiceNotFound},
		&fakeStaffClient{},
		fixedClock{now: testDay},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{CompanyID: 1, ServiceID: 4, StaffID: 7, Date: "2026-03-10"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestHandleEndToEnd(t *testing.T) {
	svc := &companyservice.Service{
		ID:          4,
		Name:        "Массаж",
		DurationMin: 30,
		Capacity:    1,
		StaffIDs:    []int64{7},
	}
	uc := NewUseCase(
		&fakeSlotsRepo{},
		&fakePolicyResolver{policy: &domain.CompanySchedulingPolicy{SlotStepMinutes: 30, MinLeadMinutes: 0}},
		&fakeCompanyClient{service: svc},
		&fakeStaffClient{schedule: workingDay(staffservice.WorkInterval{Start: "09:00", End: "11:00"})},
		fixedClock{now: testDay},
		nopLogger{},
	)

	out, err := uc.Execute(context.Background(), Request{CompanyID: 1, ServiceID: 4, StaffID: 7, Date: "2026-03-10"})
	require.NoError(t, err)

	assert.Equal(t, "Массаж", out.ServiceName)
	assert.Equal(t, 30, out.DurationMin)
	assert.Equal(t, []string{
		"2026-03-10T09:00", "2026-03-10T09:30", "2026-03-10T10:00", "2026-03-10T10:30",
	}, slotKeys(out.Slots))
}
