package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onthegorentals/onthego/internal/api/handler"
	"github.com/onthegorentals/onthego/internal/auth"
)

type userFixture struct {
	router *chi.Mux
	users  *memUserRepo
	user   *auth.User
}

func setupUserHandler(t *testing.T) *userFixture {
	t.Helper()

	users := newMemUserRepo()
	roles := newMemRoleRepo()
	for _, name := range []string{auth.RoleUser, auth.RoleAdmin, auth.RoleSuperAdmin} {
		require.NoError(t, roles.Create(context.Background(), &auth.Role{Name: name}))
	}

	userRole, err := roles.FindByName(context.Background(), auth.RoleUser)
	require.NoError(t, err)
	u := &auth.User{
		Email:    "user@gmail.com",
		Provider: auth.ProviderLocal,
		Roles:    []auth.Role{*userRole},
	}
	require.NoError(t, users.Create(context.Background(), u))

	h := handler.NewUserHandler(users, roles)
	r := chi.NewRouter()
	r.Get("/users", h.List)
	r.Get("/users/{id}", h.GetByID)
	r.Put("/users/{id}/roles", h.UpdateRoles)
	r.Delete("/users/{id}", h.Delete)
	r.Post("/users/{id}/restore", h.Restore)

	return &userFixture{router: r, users: users, user: u}
}

func (f *userFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestUserList(t *testing.T) {
	f := setupUserHandler(t)

	rec := f.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decodeBody(t, rec)["data"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "user@gmail.com", first["email"])
	assert.Equal(t, f.user.PublicID.String(), first["id"])
	assert.Equal(t, false, first["deleted"])
}

func TestUserGetByID(t *testing.T) {
	f := setupUserHandler(t)

	rec := f.do(http.MethodGet, "/users/"+f.user.PublicID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@gmail.com", decodeBody(t, rec)["data"].(map[string]any)["email"])

	rec = f.do(http.MethodGet, "/users/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodGet, "/users/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserUpdateRoles(t *testing.T) {
	f := setupUserHandler(t)

	rec := f.do(http.MethodPut, "/users/"+f.user.PublicID.String()+"/roles", `{"roles":["USER","ADMIN"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"USER", "ADMIN"}, decodeBody(t, rec)["data"].(map[string]any)["roles"])

	stored, err := f.users.GetByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"USER", "ADMIN"}, auth.RoleNames(stored.Roles))
}

func TestUserUpdateRoles_UnknownRole(t *testing.T) {
	f := setupUserHandler(t)

	rec := f.do(http.MethodPut, "/users/"+f.user.PublicID.String()+"/roles", `{"roles":["ROOT"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", decodeBody(t, rec)["status"])
}

func TestUserDeleteAndRestore(t *testing.T) {
	f := setupUserHandler(t)
	id := f.user.PublicID.String()

	rec := f.do(http.MethodDelete, "/users/"+id, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := f.users.GetByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)

	// Deleting again is a no-op.
	rec = f.do(http.MethodDelete, "/users/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodPost, "/users/"+id+"/restore", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["data"].(map[string]any)["deleted"])

	stored, err = f.users.GetByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Deleted)

	// Restoring an active user is a no-op.
	rec = f.do(http.MethodPost, "/users/"+id+"/restore", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
