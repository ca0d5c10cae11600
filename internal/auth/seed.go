package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var defaultRoles = []string{RoleUser, RoleAdmin, RoleSuperAdmin}

// SeedDefaults ensures the baseline roles and one default user per role
// exist. It runs once at startup, before the server accepts traffic,
// and is idempotent: a second run against a seeded database performs no
// writes. A failure for one role is logged and does not stop the
// remaining roles.
//
// Default users are {role}@gmail.com with password {role}password,
// meant to be rotated in real deployments.
func SeedDefaults(ctx context.Context, roles RoleRepository, users UserRepository, hasher PasswordHasher) {
	for _, name := range defaultRoles {
		role, err := ensureRole(ctx, roles, name)
		if err != nil {
			slog.Error("seed: ensuring role failed", "role", name, "error", err)
			continue
		}

		if err := ensureDefaultUser(ctx, users, hasher, role); err != nil {
			slog.Error("seed: ensuring default user failed", "role", name, "error", err)
		}
	}
}

func ensureRole(ctx context.Context, roles RoleRepository, name string) (*Role, error) {
	role, err := roles.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrRoleNotFound) {
		return nil, fmt.Errorf("finding role: %w", err)
	}

	role = &Role{Name: name}
	if err := roles.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	slog.Info("seed: created role", "role", name)
	return role, nil
}

func ensureDefaultUser(ctx context.Context, users UserRepository, hasher PasswordHasher, role *Role) error {
	email := strings.ToLower(role.Name) + "@gmail.com"

	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		if !u.Deleted {
			return nil
		}

		// Reactivate in a single save, adding the role back if missing.
		u.Deleted = false
		if !u.HasRole(role.Name) {
			u.Roles = append(u.Roles, *role)
		}
		if err := users.Update(ctx, u); err != nil {
			return fmt.Errorf("reactivating user: %w", err)
		}
		slog.Info("seed: reactivated default user", "email", email)
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("finding user: %w", err)
	}

	hash, err := hasher.Hash(strings.ToLower(role.Name) + "password")
	if err != nil {
		return fmt.Errorf("hashing default password: %w", err)
	}

	first := strings.ToLower(role.Name)
	first = strings.ToUpper(first[:1]) + first[1:]

	u = &User{
		Email:        email,
		FirstName:    first,
		LastName:     "Default",
		PasswordHash: hash,
		Provider:     ProviderLocal,
		Roles:        []Role{*role},
	}
	if err := users.Create(ctx, u); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	slog.Info("seed: created default user", "email", email)
	return nil
}
