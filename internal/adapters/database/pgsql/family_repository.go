package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finfam/family_finance_app/internal/apperrors"
	"github.com/finfam/family_finance_app/internal/core/domain"
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	"github.com/finfam/family_finance_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFamilyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxFamilyRepository creates a new repository for family data.
func NewPgxFamilyRepository(pool *pgxpool.Pool) portsrepo.FamilyRepositoryFacade {
	return &PgxFamilyRepository{pool: pool}
}

var _ portsrepo.FamilyRepositoryFacade = (*PgxFamilyRepository)(nil)

// SaveFamily inserts a new family.
func (r *PgxFamilyRepository) SaveFamily(ctx context.Context, family domain.Family) error {
	query := `
		INSERT INTO families (family_id, name, currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		family.FamilyID,
		family.Name,
		family.CurrencyCode,
		family.CreatedAt,
		family.CreatedBy,
		family.LastUpdatedAt,
		family.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: family with ID %s already exists", apperrors.ErrDuplicate, family.FamilyID)
		}
		return fmt.Errorf("failed to save family %s: %w", family.FamilyID, err)
	}
	return nil
}

// FindFamilyByID retrieves a family by its ID.
func (r *PgxFamilyRepository) FindFamilyByID(ctx context.Context, familyID string) (*domain.Family, error) {
	query := `
		SELECT family_id, name, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM families
		WHERE family_id = $1;
	`
	var m models.Family
	err := r.pool.QueryRow(ctx, query, familyID).Scan(
		&m.FamilyID,
		&m.Name,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find family by ID %s: %w", familyID, err)
	}

	return &domain.Family{
		FamilyID:     m.FamilyID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}
