package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	"github.com/finfam/family_finance_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const liabilityColumns = `liability_id, family_id, account_id, liability_type, name, status, current_balance, credit_limit, original_amount, currency_code, interest_rate, minimum_payment, billing_cycle_day, payment_due_day, statement_close_day, provider, external_id, purchase_date, metadata, created_at, created_by, last_updated_at, last_updated_by`

const planColumns = `plan_id, liability_id, total_amount, installment_amount, number_of_installments, remaining_installments, currency_code, start_date, end_date, is_paid_off, created_at, created_by, last_updated_at, last_updated_by`

const installmentColumns = `installment_id, plan_id, amount, due_date, installment_number, is_paid, paid_at, transaction_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxLiabilityRepository persists liabilities, installment plans and
// installments in PostgreSQL.
type PgxLiabilityRepository struct {
	*BaseRepository
}

// NewPgxLiabilityRepository creates a new repository for liability data.
func NewPgxLiabilityRepository(base *BaseRepository) portsrepo.LiabilityRepositoryFacade {
	return &PgxLiabilityRepository{BaseRepository: base}
}

var _ portsrepo.LiabilityRepositoryFacade = (*PgxLiabilityRepository)(nil)

func toModelLiability(l domain.Liability) models.Liability {
	m := models.Liability{
		LiabilityID:    l.LiabilityID,
		FamilyID:       l.FamilyID,
		LiabilityType:  string(l.LiabilityType),
		Name:           l.Name,
		Status:         string(l.Status),
		CurrentBalance: l.CurrentBalance,
		CreditLimit:    l.CreditLimit,
		OriginalAmount: l.OriginalAmount,
		CurrencyCode:   l.CurrencyCode,
		InterestRate:   l.InterestRate,
		MinimumPayment: l.MinimumPayment,
		PurchaseDate:   l.PurchaseDate,
		Metadata:       l.Metadata,
		AuditFields: models.AuditFields{
			CreatedAt:     l.CreatedAt,
			CreatedBy:     l.CreatedBy,
			LastUpdatedAt: l.LastUpdatedAt,
			LastUpdatedBy: l.LastUpdatedBy,
		},
	}
	if l.AccountID != "" {
		m.AccountID = sql.NullString{String: l.AccountID, Valid: true}
	}
	if l.Provider != "" {
		m.Provider = sql.NullString{String: l.Provider, Valid: true}
	}
	if l.ExternalID != "" {
		m.ExternalID = sql.NullString{String: l.ExternalID, Valid: true}
	}
	if l.BillingCycleDay != nil {
		m.BillingCycleDay = sql.NullInt32{Int32: int32(*l.BillingCycleDay), Valid: true}
	}
	if l.PaymentDueDay != nil {
		m.PaymentDueDay = sql.NullInt32{Int32: int32(*l.PaymentDueDay), Valid: true}
	}
	if l.StatementCloseDay != nil {
		m.StatementCloseDay = sql.NullInt32{Int32: int32(*l.StatementCloseDay), Valid: true}
	}
	return m
}

func toDomainLiability(m models.Liability) domain.Liability {
	l := domain.Liability{
		LiabilityID:    m.LiabilityID,
		FamilyID:       m.FamilyID,
		LiabilityType:  domain.LiabilityType(m.LiabilityType),
		Name:           m.Name,
		Status:         domain.LiabilityStatus(m.Status),
		CurrentBalance: m.CurrentBalance,
		CreditLimit:    m.CreditLimit,
		OriginalAmount: m.OriginalAmount,
		CurrencyCode:   m.CurrencyCode,
		InterestRate:   m.InterestRate,
		MinimumPayment: m.MinimumPayment,
		PurchaseDate:   m.PurchaseDate,
		Metadata:       m.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.AccountID.Valid {
		l.AccountID = m.AccountID.String
	}
	if m.Provider.Valid {
		l.Provider = m.Provider.String
	}
	if m.ExternalID.Valid {
		l.ExternalID = m.ExternalID.String
	}
	if m.BillingCycleDay.Valid {
		day := int(m.BillingCycleDay.Int32)
		l.BillingCycleDay = &day
	}
	if m.PaymentDueDay.Valid {
		day := int(m.PaymentDueDay.Int32)
		l.PaymentDueDay = &day
	}
	if m.StatementCloseDay.Valid {
		day := int(m.StatementCloseDay.Int32)
		l.StatementCloseDay = &day
	}
	return l
}

func scanLiability(row pgx.Row) (*domain.Liability, error) {
	var m models.Liability
	err := row.Scan(
		&m.LiabilityID,
		&m.FamilyID,
		&m.AccountID,
		&m.LiabilityType,
		&m.Name,
		&m.Status,
		&m.CurrentBalance,
		&m.CreditLimit,
		&m.OriginalAmount,
		&m.CurrencyCode,
		&m.InterestRate,
		&m.MinimumPayment,
		&m.BillingCycleDay,
		&m.PaymentDueDay,
		&m.StatementCloseDay,
		&m.Provider,
		&m.ExternalID,
		&m.PurchaseDate,
		&m.Metadata,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	l := toDomainLiability(m)
	return &l, nil
}

func toDomainInstallment(m models.Installment) domain.Installment {
	inst := domain.Installment{
		InstallmentID:     m.InstallmentID,
		PlanID:            m.PlanID,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		InstallmentNumber: m.InstallmentNumber,
		IsPaid:            m.IsPaid,
		PaidAt:            m.PaidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.TransactionID.Valid {
		inst.TransactionID = m.TransactionID.String
	}
	return inst
}

func toDomainPlan(m models.InstallmentPlan) domain.InstallmentPlan {
	return domain.InstallmentPlan{
		PlanID:                m.PlanID,
		LiabilityID:           m.LiabilityID,
		TotalAmount:           m.TotalAmount,
		InstallmentAmount:     m.InstallmentAmount,
		NumberOfInstallments:  m.NumberOfInstallments,
		RemainingInstallments: m.RemainingInstallments,
		CurrencyCode:          m.CurrencyCode,
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		IsPaidOff:             m.IsPaidOff,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanInstallment(row pgx.Row) (*domain.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID,
		&m.PlanID,
		&m.Amount,
		&m.DueDate,
		&m.InstallmentNumber,
		&m.IsPaid,
		&m.PaidAt,
		&m.TransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	inst := toDomainInstallment(m)
	return &inst, nil
}

func scanPlan(row pgx.Row) (*domain.InstallmentPlan, error) {
	var m models.InstallmentPlan
	err := row.Scan(
		&m.PlanID,
		&m.LiabilityID,
		&m.TotalAmount,
		&m.InstallmentAmount,
		&m.NumberOfInstallments,
		&m.RemainingInstallments,
		&m.CurrencyCode,
		&m.StartDate,
		&m.EndDate,
		&m.IsPaidOff,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	plan := toDomainPlan(m)
	return &plan, nil
}

// SaveLiability inserts a new liability.
func (r *PgxLiabilityRepository) SaveLiability(ctx context.Context, liability domain.Liability) error {
	m := toModelLiability(liability)
	query := `
		INSERT INTO liabilities (` + liabilityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LiabilityID,
		m.FamilyID,
		m.AccountID,
		m.LiabilityType,
		m.Name,
		m.Status,
		m.CurrentBalance,
		m.CreditLimit,
		m.OriginalAmount,
		m.CurrencyCode,
		m.InterestRate,
		m.MinimumPayment,
		m.BillingCycleDay,
		m.PaymentDueDay,
		m.StatementCloseDay,
		m.Provider,
		m.ExternalID,
		m.PurchaseDate,
		m.Metadata,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: liability with ID %s already exists", apperrors.ErrDuplicate, liability.LiabilityID)
		}
		return fmt.Errorf("failed to save liability %s: %w", liability.LiabilityID, err)
	}
	return nil
}

// FindLiabilityByID retrieves a liability by its ID.
func (r *PgxLiabilityRepository) FindLiabilityByID(ctx context.Context, liabilityID string) (*domain.Liability, error) {
	query := `SELECT ` + liabilityColumns + ` FROM liabilities WHERE liability_id = $1;`
	liab, err := scanLiability(r.Pool.QueryRow(ctx, query, liabilityID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find liability by ID %s: %w", liabilityID, err)
	}
	return liab, nil
}

// ListLiabilities retrieves a filtered page of a family's liabilities together
// with the total count matching the filter.
func (r *PgxLiabilityRepository) ListLiabilities(ctx context.Context, familyID string, filter portsrepo.ListLiabilitiesFilter) ([]domain.Liability, int64, error) {
	where := `WHERE family_id = $1`
	args := []interface{}{familyID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		where += fmt.Sprintf(" AND liability_type = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM liabilities ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count liabilities for family %s: %w", familyID, err)
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)
	listQuery := fmt.Sprintf(`
		SELECT `+liabilityColumns+`
		FROM liabilities
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;
	`, where, limitPos, offsetPos)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list liabilities for family %s: %w", familyID, err)
	}
	defer rows.Close()

	liabilities, err := collectLiabilities(rows)
	if err != nil {
		return nil, 0, err
	}
	return liabilities, total, nil
}

// ListActiveLiabilities retrieves all ACTIVE liabilities of a family.
func (r *PgxLiabilityRepository) ListActiveLiabilities(ctx context.Context, familyID string) ([]domain.Liability, error) {
	query := `
		SELECT ` + liabilityColumns + `
		FROM liabilities
		WHERE family_id = $1 AND status = $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, familyID, string(domain.LiabilityActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list active liabilities for family %s: %w", familyID, err)
	}
	defer rows.Close()
	return collectLiabilities(rows)
}

func collectLiabilities(rows pgx.Rows) ([]domain.Liability, error) {
	liabilities := make([]domain.Liability, 0)
	for rows.Next() {
		var m models.Liability
		if err := rows.Scan(
			&m.LiabilityID,
			&m.FamilyID,
			&m.AccountID,
			&m.LiabilityType,
			&m.Name,
			&m.Status,
			&m.CurrentBalance,
			&m.CreditLimit,
			&m.OriginalAmount,
			&m.CurrencyCode,
			&m.InterestRate,
			&m.MinimumPayment,
			&m.BillingCycleDay,
			&m.PaymentDueDay,
			&m.StatementCloseDay,
			&m.Provider,
			&m.ExternalID,
			&m.PurchaseDate,
			&m.Metadata,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan liability row: %w", err)
		}
		liabilities = append(liabilities, toDomainLiability(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liability rows: %w", err)
	}
	return liabilities, nil
}

// UpdateLiability updates an existing liability in full.
func (r *PgxLiabilityRepository) UpdateLiability(ctx context.Context, liability domain.Liability) error {
	m := toModelLiability(liability)
	query := `
		UPDATE liabilities
		SET account_id = $2, liability_type = $3, name = $4, status = $5,
		    current_balance = $6, credit_limit = $7, original_amount = $8,
		    currency_code = $9, interest_rate = $10, minimum_payment = $11,
		    billing_cycle_day = $12, payment_due_day = $13, statement_close_day = $14,
		    provider = $15, external_id = $16, purchase_date = $17, metadata = $18,
		    last_updated_at = $19, last_updated_by = $20
		WHERE liability_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.LiabilityID,
		m.AccountID,
		m.LiabilityType,
		m.Name,
		m.Status,
		m.CurrentBalance,
		m.CreditLimit,
		m.OriginalAmount,
		m.CurrencyCode,
		m.InterestRate,
		m.MinimumPayment,
		m.BillingCycleDay,
		m.PaymentDueDay,
		m.StatementCloseDay,
		m.Provider,
		m.ExternalID,
		m.PurchaseDate,
		m.Metadata,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update liability %s: %w", liability.LiabilityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLiability hard deletes a liability. Installment plans and installments
// are removed by ON DELETE CASCADE.
func (r *PgxLiabilityRepository) DeleteLiability(ctx context.Context, liabilityID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM liabilities WHERE liability_id = $1;`, liabilityID)
	if err != nil {
		return fmt.Errorf("failed to delete liability %s: %w", liabilityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveInstallmentPlan persists the plan and all of its installments in one
// transaction using a batch for the installment inserts.
func (r *PgxLiabilityRepository) SaveInstallmentPlan(ctx context.Context, plan domain.InstallmentPlan, installments []domain.Installment) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for plan %s: %w", plan.PlanID, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	planQuery := `
		INSERT INTO installment_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, planQuery,
		plan.PlanID,
		plan.LiabilityID,
		plan.TotalAmount,
		plan.InstallmentAmount,
		plan.NumberOfInstallments,
		plan.RemainingInstallments,
		plan.CurrencyCode,
		plan.StartDate,
		plan.EndDate,
		plan.IsPaidOff,
		plan.CreatedAt,
		plan.CreatedBy,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: installment plan with ID %s already exists", apperrors.ErrDuplicate, plan.PlanID)
		}
		return fmt.Errorf("failed to save installment plan %s: %w", plan.PlanID, err)
	}

	instQuery := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, inst := range installments {
		var txnID sql.NullString
		if inst.TransactionID != "" {
			txnID = sql.NullString{String: inst.TransactionID, Valid: true}
		}
		batch.Queue(instQuery,
			inst.InstallmentID,
			inst.PlanID,
			inst.Amount,
			inst.DueDate,
			inst.InstallmentNumber,
			inst.IsPaid,
			inst.PaidAt,
			txnID,
			inst.CreatedAt,
			inst.CreatedBy,
			inst.LastUpdatedAt,
			inst.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range installments {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to save installment for plan %s: %w", plan.PlanID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close installment batch for plan %s: %w", plan.PlanID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit installment plan %s: %w", plan.PlanID, err)
	}
	return nil
}

// FindPlanByID retrieves an installment plan by its ID.
func (r *PgxLiabilityRepository) FindPlanByID(ctx context.Context, planID string) (*domain.InstallmentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM installment_plans WHERE plan_id = $1;`
	plan, err := scanPlan(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find installment plan by ID %s: %w", planID, err)
	}
	return plan, nil
}

// FindInstallmentsByPlanID retrieves a plan's installments in schedule order.
func (r *PgxLiabilityRepository) FindInstallmentsByPlanID(ctx context.Context, planID string) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE plan_id = $1
		ORDER BY installment_number;
	`
	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments for plan %s: %w", planID, err)
	}
	defer rows.Close()

	installments := make([]domain.Installment, 0)
	for rows.Next() {
		var m models.Installment
		if err := rows.Scan(
			&m.InstallmentID,
			&m.PlanID,
			&m.Amount,
			&m.DueDate,
			&m.InstallmentNumber,
			&m.IsPaid,
			&m.PaidAt,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, toDomainInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}
	return installments, nil
}

// FindInstallmentForLiability retrieves an installment only when its plan
// belongs to the given liability.
func (r *PgxLiabilityRepository) FindInstallmentForLiability(ctx context.Context, installmentID string, liabilityID string) (*domain.Installment, error) {
	query := `
		SELECT i.installment_id, i.plan_id, i.amount, i.due_date, i.installment_number,
		       i.is_paid, i.paid_at, i.transaction_id,
		       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
		FROM installments i
		JOIN installment_plans p ON p.plan_id = i.plan_id
		WHERE i.installment_id = $1 AND p.liability_id = $2;
	`
	inst, err := scanInstallment(r.Pool.QueryRow(ctx, query, installmentID, liabilityID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find installment %s for liability %s: %w", installmentID, liabilityID, err)
	}
	return inst, nil
}

// MarkInstallmentPaid flips an installment to paid and rolls the plan and
// liability state forward, all inside one transaction. The paid transition is
// guarded by is_paid = FALSE so a concurrent caller loses cleanly.
func (r *PgxLiabilityRepository) MarkInstallmentPaid(ctx context.Context, liabilityID string, installmentID string, transactionID *string, userID string, now time.Time) (*domain.Installment, *domain.InstallmentPlan, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction for installment %s: %w", installmentID, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var planID string
	var amount decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT i.plan_id, i.amount
		FROM installments i
		JOIN installment_plans p ON p.plan_id = i.plan_id
		WHERE i.installment_id = $1 AND p.liability_id = $2;
	`, installmentID, liabilityID).Scan(&planID, &amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load installment %s: %w", installmentID, err)
	}

	var txnID sql.NullString
	if transactionID != nil && *transactionID != "" {
		txnID = sql.NullString{String: *transactionID, Valid: true}
	}
	tag, err := tx.Exec(ctx, `
		UPDATE installments
		SET is_paid = TRUE, paid_at = $2, transaction_id = $3,
		    last_updated_at = $2, last_updated_by = $4
		WHERE installment_id = $1 AND is_paid = FALSE;
	`, installmentID, now, txnID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark installment %s paid: %w", installmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, fmt.Errorf("%w: installment is already paid", apperrors.ErrValidation)
	}

	var remaining int
	err = tx.QueryRow(ctx, `
		UPDATE installment_plans
		SET remaining_installments = remaining_installments - 1,
		    last_updated_at = $2, last_updated_by = $3
		WHERE plan_id = $1
		RETURNING remaining_installments;
	`, planID, now, userID).Scan(&remaining)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrement plan %s: %w", planID, err)
	}
	if remaining <= 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE installment_plans SET is_paid_off = TRUE WHERE plan_id = $1;
		`, planID); err != nil {
			return nil, nil, fmt.Errorf("failed to mark plan %s paid off: %w", planID, err)
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE liabilities
		SET current_balance = current_balance - $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE liability_id = $1;
	`, liabilityID, amount, now, userID); err != nil {
		return nil, nil, fmt.Errorf("failed to reduce balance of liability %s: %w", liabilityID, err)
	}

	inst, err := scanInstallment(tx.QueryRow(ctx, `SELECT `+installmentColumns+` FROM installments WHERE installment_id = $1;`, installmentID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload installment %s: %w", installmentID, err)
	}
	plan, err := scanPlan(tx.QueryRow(ctx, `SELECT `+planColumns+` FROM installment_plans WHERE plan_id = $1;`, planID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload plan %s: %w", planID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit installment payment %s: %w", installmentID, err)
	}
	return inst, plan, nil
}

// FindUnpaidInstallmentsDue retrieves unpaid installments across a family's
// ACTIVE liabilities due on or before the cutoff, joined with their liability.
func (r *PgxLiabilityRepository) FindUnpaidInstallmentsDue(ctx context.Context, familyID string, before time.Time) ([]domain.InstallmentDue, error) {
	query := `
		SELECT i.installment_id, i.plan_id, i.amount, i.due_date, i.installment_number,
		       i.is_paid, i.paid_at, i.transaction_id,
		       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by,
		       l.liability_id, l.name, l.liability_type, l.currency_code
		FROM installments i
		JOIN installment_plans p ON p.plan_id = i.plan_id
		JOIN liabilities l ON l.liability_id = p.liability_id
		WHERE l.family_id = $1 AND l.status = $2 AND i.is_paid = FALSE AND i.due_date <= $3
		ORDER BY i.due_date;
	`
	rows, err := r.Pool.Query(ctx, query, familyID, string(domain.LiabilityActive), before)
	if err != nil {
		return nil, fmt.Errorf("failed to list due installments for family %s: %w", familyID, err)
	}
	defer rows.Close()

	due := make([]domain.InstallmentDue, 0)
	for rows.Next() {
		var m models.Installment
		var d domain.InstallmentDue
		var liabilityType string
		if err := rows.Scan(
			&m.InstallmentID,
			&m.PlanID,
			&m.Amount,
			&m.DueDate,
			&m.InstallmentNumber,
			&m.IsPaid,
			&m.PaidAt,
			&m.TransactionID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&d.LiabilityID,
			&d.LiabilityName,
			&liabilityType,
			&d.CurrencyCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan due installment row: %w", err)
		}
		d.Installment = toDomainInstallment(m)
		d.LiabilityType = domain.LiabilityType(liabilityType)
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due installment rows: %w", err)
	}
	return due, nil
}
