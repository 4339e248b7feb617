package policy

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

var policyColumns = []string{
	"id",
	"company_id",
	"service_id",
	"slot_step_minutes",
	"min_lead_minutes",
	"free_cancel_threshold_minutes",
	"late_cancel_fee_percent",
	"no_show_grace_minutes",
	"checkin_code_ttl_minutes",
	"max_customer_reschedules",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с политиками планирования компаний
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPolicyWithHierarchy получает политику с учетом иерархии:
// сначала ищет политику для конкретной услуги, затем общую для компании
// Если ни одной нет - возвращает ErrPolicyNotFound, вызывающая сторона
// использует бизнес-дефолты
func (r *Repository) GetPolicyWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.CompanySchedulingPolicy, error) {
	if serviceID != nil {
		p, err := r.get(ctx, squirrel.And{
			squirrel.Eq{"company_id": companyID},
			squirrel.Eq{"service_id": *serviceID},
		})
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrPolicyNotFound) {
			return nil, err
		}
	}

	return r.get(ctx, squirrel.And{
		squirrel.Eq{"company_id": companyID},
		squirrel.Eq{"service_id": nil},
	})
}

// GetAllByCompany получает все политики компании (общую и по услугам)
func (r *Repository) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.CompanySchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("company_scheduling_policies").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("service_id NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	policies := make([]*domain.CompanySchedulingPolicy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByCompany - scan row: %v", ErrScanRow, err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - rows error: %v", ErrScanRow, err)
	}

	return policies, nil
}

// Upsert создает или обновляет политику компании (по паре company_id/service_id)
func (r *Repository) Upsert(ctx context.Context, p *domain.CompanySchedulingPolicy) (*domain.CompanySchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("company_scheduling_policies").
		Columns(
			"company_id",
			"service_id",
			"slot_step_minutes",
			"min_lead_minutes",
			"free_cancel_threshold_minutes",
			"late_cancel_fee_percent",
			"no_show_grace_minutes",
			"checkin_code_ttl_minutes",
			"max_customer_reschedules",
		).
		Values(
			p.CompanyID,
			p.ServiceID,
			p.SlotStepMinutes,
			p.MinLeadMinutes,
			p.FreeCancelThresholdMinutes,
			p.LateCancelFeePercent,
			p.NoShowGraceMinutes,
			p.CheckinCodeTTLMinutes,
			p.MaxCustomerReschedules,
		).
		Suffix(`ON CONFLICT (company_id, COALESCE(service_id, 0)) DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			min_lead_minutes = EXCLUDED.min_lead_minutes,
			free_cancel_threshold_minutes = EXCLUDED.free_cancel_threshold_minutes,
			late_cancel_fee_percent = EXCLUDED.late_cancel_fee_percent,
			no_show_grace_minutes = EXCLUDED.no_show_grace_minutes,
			checkin_code_ttl_minutes = EXCLUDED.checkin_code_ttl_minutes,
			max_customer_reschedules = EXCLUDED.max_customer_reschedules,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// Delete удаляет политику по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("company_scheduling_policies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

func (r *Repository) get(ctx context.Context, where squirrel.Sqlizer) (*domain.CompanySchedulingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("company_scheduling_policies").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get - scan policy: %v", ErrScanRow, err)
	}

	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.CompanySchedulingPolicy, error) {
	var p domain.CompanySchedulingPolicy
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.ServiceID,
		&p.SlotStepMinutes,
		&p.MinLeadMinutes,
		&p.FreeCancelThresholdMinutes,
		&p.LateCancelFeePercent,
		&p.NoShowGraceMinutes,
		&p.CheckinCodeTTLMinutes,
		&p.MaxCustomerReschedules,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
