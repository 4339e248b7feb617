package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/pkg/dbmetrics"
	"github.com/glossup/GLS-SchedulingService/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"company_id",
	"staff_id",
	"customer_id",
	"service_id",
	"service_name",
	"service_duration_min",
	"service_buffer_before_min",
	"service_buffer_after_min",
	"service_capacity",
	"service_price_cents",
	"booking_date",
	"start_at_ms",
	"end_at_ms",
	"occupied_start_at_ms",
	"occupied_end_at_ms",
	"status",
	"proposal_by",
	"proposed_booking_date",
	"proposed_start_at_ms",
	"proposed_end_at_ms",
	"proposed_occupied_start_at_ms",
	"proposed_occupied_end_at_ms",
	"proposed_at_ms",
	"proposal_note",
	"customer_reschedule_count",
	"payment_status",
	"amount_cents",
	"cancellation_fee_percent",
	"cancellation_fee_amount_cents",
	"check_in_code",
	"check_in_code_expires_at_ms",
	"check_in_code_consumed_at_ms",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// создание с проверкой вместимости обязано идти внутри сериализуемой
// транзакции, чтобы два конкурентных запроса не заняли последнее место
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"company_id",
			"staff_id",
			"customer_id",
			"service_id",
			"service_name",
			"service_duration_min",
			"service_buffer_before_min",
			"service_buffer_after_min",
			"service_capacity",
			"service_price_cents",
			"booking_date",
			"start_at_ms",
			"end_at_ms",
			"occupied_start_at_ms",
			"occupied_end_at_ms",
			"status",
			"customer_reschedule_count",
			"payment_status",
			"amount_cents",
			"note",
		).
		Values(
			b.CompanyID,
			b.StaffID,
			b.CustomerID,
			b.ServiceID,
			b.ServiceName,
			b.ServiceDurationMin,
			b.ServiceBufferBeforeMin,
			b.ServiceBufferAfterMin,
			b.ServiceCapacity,
			b.ServicePriceCents,
			b.BookingDate,
			b.StartAtMs,
			b.EndAtMs,
			b.OccupiedStartAtMs,
			b.OccupiedEndAtMs,
			b.Status,
			b.CustomerRescheduleCount,
			b.PaymentStatus,
			b.AmountCents,
			b.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы операция
// read-check-write над статусом была атомарной
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByStaffAndDate получает бронирования сотрудника на календарный день
// Внутри транзакции блокирует строки (FOR UPDATE) - набор бронирований дня
// участвует в проверке вместимости и не должен меняться под ногами
func (r *Repository) GetByStaffAndDate(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": filter.StaffID}).
		Where(squirrel.Eq{"booking_date": filter.BookingDate}).
		OrderBy("start_at_ms ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomerID получает историю бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_at_ms DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCompanyWithFilter получает бронирования компании с гибкой фильтрацией
// по сотруднику, периоду, статусу и включению неактивных бронирований
func (r *Repository) GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"company_id": filter.CompanyID})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && *filter.StartDate == *filter.EndDate {
		selectBuilder = selectBuilder.OrderBy("start_at_ms ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_at_ms DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus меняет статус бронирования с compare-and-set по исходному статусу
// Запись проходит только если бронирование всё ещё в статусе expected;
// иначе возвращается ErrStaleState (или ErrBookingNotFound, если строки нет)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, expected, next domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, id, query, args)
}

// SaveProposal записывает предложение переноса и переводит бронирование
// в статус reschedule_requested (compare-and-set по исходному статусу)
// incrementCustomerCount увеличивает счетчик самостоятельных переносов клиента
func (r *Repository) SaveProposal(ctx context.Context, id int64, expected domain.BookingStatus, p domain.Proposal, incrementCustomerCount bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusRescheduleRequested).
		Set("proposal_by", string(p.By)).
		Set("proposed_booking_date", p.BookingDate).
		Set("proposed_start_at_ms", p.StartAtMs).
		Set("proposed_end_at_ms", p.EndAtMs).
		Set("proposed_occupied_start_at_ms", p.OccupiedStartAtMs).
		Set("proposed_occupied_end_at_ms", p.OccupiedEndAtMs).
		Set("proposed_at_ms", p.ProposedAtMs).
		Set("proposal_note", p.Note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected})

	if incrementCustomerCount {
		updateBuilder = updateBuilder.Set("customer_reschedule_count", squirrel.Expr("customer_reschedule_count + 1"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveProposal - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, id, query, args)
}

// AcceptProposal folds предложенные поля в основные, очищает предложение
// и подтверждает бронирование (compare-and-set по reschedule_requested)
// Передаются уже свернутые значения из domain.Booking.ApplyProposal
func (r *Repository) AcceptProposal(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("booking_date", b.BookingDate).
		Set("start_at_ms", b.StartAtMs).
		Set("end_at_ms", b.EndAtMs).
		Set("occupied_start_at_ms", b.OccupiedStartAtMs).
		Set("occupied_end_at_ms", b.OccupiedEndAtMs).
		Set("proposal_by", nil).
		Set("proposed_booking_date", nil).
		Set("proposed_start_at_ms", nil).
		Set("proposed_end_at_ms", nil).
		Set("proposed_occupied_start_at_ms", nil).
		Set("proposed_occupied_end_at_ms", nil).
		Set("proposed_at_ms", nil).
		Set("proposal_note", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Where(squirrel.Eq{"status": domain.StatusRescheduleRequested}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AcceptProposal - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, b.ID, query, args)
}

// DeclineProposal очищает предложение переноса и выставляет итоговый статус
// (compare-and-set по reschedule_requested)
func (r *Repository) DeclineProposal(ctx context.Context, id int64, next domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("proposal_by", nil).
		Set("proposed_booking_date", nil).
		Set("proposed_start_at_ms", nil).
		Set("proposed_end_at_ms", nil).
		Set("proposed_occupied_start_at_ms", nil).
		Set("proposed_occupied_end_at_ms", nil).
		Set("proposed_at_ms", nil).
		Set("proposal_note", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusRescheduleRequested}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeclineProposal - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, id, query, args)
}

// Cancel отменяет бронирование с записью штрафа
// Предложение переноса, если было, очищается вместе с отменой
func (r *Repository) Cancel(ctx context.Context, id int64, expected, next domain.BookingStatus, feePercent int, feeAmountCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", next).
		Set("cancellation_fee_percent", feePercent).
		Set("cancellation_fee_amount_cents", feeAmountCents).
		Set("proposal_by", nil).
		Set("proposed_booking_date", nil).
		Set("proposed_start_at_ms", nil).
		Set("proposed_end_at_ms", nil).
		Set("proposed_occupied_start_at_ms", nil).
		Set("proposed_occupied_end_at_ms", nil).
		Set("proposed_at_ms", nil).
		Set("proposal_note", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, id, query, args)
}

// SetCheckInCode записывает новый код визита с истечением срока
// Прежний непогашенный код инвалидируется перезаписью
// Код выдается только для подтвержденного бронирования (compare-and-set)
func (r *Repository) SetCheckInCode(ctx context.Context, id int64, code string, expiresAtMs int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("check_in_code", code).
		Set("check_in_code_expires_at_ms", expiresAtMs).
		Set("check_in_code_consumed_at_ms", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckInCode - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, id, query, args)
}

// ConsumeCheckInCode атомарно гасит код визита и отмечает прибытие клиента
// Проходит только для подтвержденного бронирования с непогашенным кодом -
// повторный вызов упирается в compare-and-set и возвращает ErrStaleState
func (r *Repository) ConsumeCheckInCode(ctx context.Context, id int64, consumedAtMs int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCheckedIn).
		Set("check_in_code_consumed_at_ms", consumedAtMs).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where("check_in_code_consumed_at_ms IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConsumeCheckInCode - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, id, query, args)
}

// UpdatePaymentStatus обновляет платежный статус бронирования
// Работает и для терминальных статусов - платежный коллаборатор может
// отчитаться о платеже уже после завершения бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execGuarded выполняет compare-and-set запрос и различает
// "строки нет" (ErrBookingNotFound) и "статус уже другой" (ErrStaleState)
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: execute guarded update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Запись не прошла: выясняем, нет строки или не совпал статус
	existsQuery, existsArgs, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: build exists query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: scan exists row: %v", ErrScanRow, err)
	}

	return ErrStaleState
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var proposalBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CompanyID,
		&b.StaffID,
		&b.CustomerID,
		&b.ServiceID,
		&b.ServiceName,
		&b.ServiceDurationMin,
		&b.ServiceBufferBeforeMin,
		&b.ServiceBufferAfterMin,
		&b.ServiceCapacity,
		&b.ServicePriceCents,
		&b.BookingDate,
		&b.StartAtMs,
		&b.EndAtMs,
		&b.OccupiedStartAtMs,
		&b.OccupiedEndAtMs,
		&b.Status,
		&proposalBy,
		&b.ProposedBookingDate,
		&b.ProposedStartAtMs,
		&b.ProposedEndAtMs,
		&b.ProposedOccupiedStartAtMs,
		&b.ProposedOccupiedEndAtMs,
		&b.ProposedAtMs,
		&b.ProposalNote,
		&b.CustomerRescheduleCount,
		&b.PaymentStatus,
		&b.AmountCents,
		&b.CancellationFeePercent,
		&b.CancellationFeeAmountCents,
		&b.CheckInCode,
		&b.CheckInCodeExpiresAtMs,
		&b.CheckInCodeConsumedAtMs,
		&b.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if proposalBy.Valid {
		role := domain.ActorRole(proposalBy.String)
		b.ProposalBy = &role
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// inactiveStatusStrings возвращает неактивные статусы строками для фильтров
func inactiveStatusStrings() []string {
	out := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		out[i] = string(s)
	}
	return out
}
