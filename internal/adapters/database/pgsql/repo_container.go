package pgsql

import (
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires up all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	base := NewBaseRepository(pool)
	return &portsrepo.RepositoryProvider{
		UserRepo:      NewPgxUserRepository(pool),
		FamilyRepo:    NewPgxFamilyRepository(pool),
		AccountRepo:   NewPgxAccountRepository(pool),
		LiabilityRepo: NewPgxLiabilityRepository(base),
	}
}
