package auth_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/auth"
)

// memUserRepo is an in-memory UserRepository that counts writes so tests
// can assert idempotence.
type memUserRepo struct {
	users     map[int64]*auth.User
	nextID    int64
	creates   int
	updates   int
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*auth.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *auth.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return auth.ErrEmailExists
		}
	}
	m.creates++
	m.nextID++
	u.ID = m.nextID
	u.PublicID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*auth.User, error) {
	if u, ok := m.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, auth.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memUserRepo) GetByPublicID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range m.users {
		if u.PublicID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memUserRepo) List(_ context.Context) ([]auth.User, error) {
	out := make([]auth.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Update(_ context.Context, u *auth.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return auth.ErrUserNotFound
	}
	m.updates++
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

// memRoleRepo is an in-memory RoleRepository. failCreate lists role
// names whose creation should fail.
type memRoleRepo struct {
	roles      map[string]*auth.Role
	nextID     int64
	creates    int
	failCreate map[string]error
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: map[string]*auth.Role{}}
}

func (m *memRoleRepo) FindByName(_ context.Context, name string) (*auth.Role, error) {
	if r, ok := m.roles[name]; ok {
		out := *r
		return &out, nil
	}
	return nil, auth.ErrRoleNotFound
}

func (m *memRoleRepo) Create(_ context.Context, role *auth.Role) error {
	if err := m.failCreate[role.Name]; err != nil {
		return err
	}
	m.creates++
	m.nextID++
	role.ID = m.nextID
	stored := *role
	m.roles[role.Name] = &stored
	return nil
}

// memTokenRepo is an in-memory RefreshTokenRepository enforcing the
// one-token-per-user invariant the same way the upsert does.
type memTokenRepo struct {
	byUser  map[int64]*auth.RefreshToken
	saves   int
	revokes int
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{byUser: map[int64]*auth.RefreshToken{}}
}

func (m *memTokenRepo) Save(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	m.saves++
	m.byUser[userID] = &auth.RefreshToken{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *memTokenRepo) FindValid(_ context.Context, tokenHash string, now time.Time) (*auth.RefreshToken, error) {
	for _, rt := range m.byUser {
		if rt.TokenHash == tokenHash {
			if !now.Before(rt.ExpiresAt) {
				return nil, auth.ErrTokenExpired
			}
			out := *rt
			return &out, nil
		}
	}
	return nil, auth.ErrTokenNotFound
}

func (m *memTokenRepo) Revoke(_ context.Context, userID int64) error {
	m.revokes++
	delete(m.byUser, userID)
	return nil
}

func (m *memTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, rt := range m.byUser {
		if !now.Before(rt.ExpiresAt) {
			delete(m.byUser, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeHasher avoids bcrypt cost in tests while keeping hashes inspectable.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (fakeHasher) Matches(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}
