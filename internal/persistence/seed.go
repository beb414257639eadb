package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-onboarding/internal/auth"
	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/repository"
)

type seedUser struct {
	Username string
	Password string
	Role     domain.UserRole
	Name     string
	Email    string
}

var defaultUsers = []seedUser{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin, Name: "System Administrator", Email: "admin@ageasfederal.com"},
	{Username: "manager", Password: "manager123", Role: domain.RoleManager, Name: "Operations Manager", Email: "manager@ageasfederal.com"},
	{Username: "operator", Password: "operator123", Role: domain.RoleOperator, Name: "Data Operator", Email: "operator@ageasfederal.com"},
}

// SeedUsers creates the default operator accounts when the user store is empty.
func SeedUsers(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range defaultUsers {
		hash, err := auth.HashPassword(seed.Password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Username:     seed.Username,
			PasswordHash: hash,
			Role:         seed.Role,
			Name:         seed.Name,
			Email:        seed.Email,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
	}

	logger.Info("seeded default users", zap.Int("count", len(defaultUsers)))
	return nil
}
