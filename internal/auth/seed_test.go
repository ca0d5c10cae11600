package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onthegorentals/onthego/internal/auth"
)

func TestSeedDefaults_CreatesRolesAndUsers(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()

	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	assert.Equal(t, 3, roles.creates)
	assert.Equal(t, 3, users.creates)

	for _, tc := range []struct {
		email    string
		password string
		role     string
	}{
		{"user@gmail.com", "userpassword", auth.RoleUser},
		{"admin@gmail.com", "adminpassword", auth.RoleAdmin},
		{"superadmin@gmail.com", "superadminpassword", auth.RoleSuperAdmin},
	} {
		u, err := users.GetByEmail(context.Background(), tc.email)
		require.NoError(t, err, tc.email)
		assert.Equal(t, "hashed:"+tc.password, u.PasswordHash)
		assert.True(t, u.HasRole(tc.role), "default user should hold its role")
		assert.False(t, u.Deleted)
		assert.Equal(t, auth.ProviderLocal, u.Provider)
	}
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()

	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	users.creates, users.updates, roles.creates = 0, 0, 0

	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	assert.Zero(t, roles.creates, "second run must create no roles")
	assert.Zero(t, users.creates, "second run must create no users")
	assert.Zero(t, users.updates, "second run must update no users")
}

func TestSeedDefaults_ReactivatesDeletedUser(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()

	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	// Soft-delete the admin user and strip its role.
	u, err := users.GetByEmail(context.Background(), "admin@gmail.com")
	require.NoError(t, err)
	u.Deleted = true
	u.Roles = nil
	require.NoError(t, users.Update(context.Background(), u))

	users.creates, users.updates = 0, 0

	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	assert.Zero(t, users.creates)
	assert.Equal(t, 1, users.updates, "reactivation must be a single save")

	u, err = users.GetByEmail(context.Background(), "admin@gmail.com")
	require.NoError(t, err)
	assert.False(t, u.Deleted, "user must be reactivated")
	assert.True(t, u.HasRole(auth.RoleAdmin), "missing role must be restored in the same save")
}

func TestSeedDefaults_RoleFailureIsIsolated(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()
	roles.failCreate = map[string]error{auth.RoleAdmin: errors.New("insert failed")}

	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	_, err := users.GetByEmail(context.Background(), "admin@gmail.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound, "failed role must not get a user")

	for _, email := range []string{"user@gmail.com", "superadmin@gmail.com"} {
		_, err := users.GetByEmail(context.Background(), email)
		assert.NoError(t, err, "other roles must still be seeded")
	}
}

func TestSeedDefaults_UserCreateFailureIsIsolated(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()
	users.createErr = errors.New("insert failed")

	// Must not panic and must still create all roles.
	auth.SeedDefaults(context.Background(), roles, users, fakeHasher{})

	assert.Equal(t, 3, roles.creates)
}
