package services

import (
	portsrepo "github.com/finfam/family_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finfam/family_finance_app/internal/core/ports/services"
	"github.com/finfam/family_finance_app/internal/platform/config"
)

// NewServiceContainer wires up all application services over the repository
// provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	return &portssvc.ServiceContainer{
		User:        userSvc,
		Family:      NewFamilyService(repos.FamilyRepo, repos.UserRepo),
		Account:     NewAccountService(repos.AccountRepo, repos.UserRepo),
		Liability:   NewLiabilityService(repos.LiabilityRepo, repos.AccountRepo, repos.UserRepo),
		Token:       NewTokenService(cfg, userSvc),
		GoogleOAuth: NewGoogleOAuthService(cfg),
	}
}
