package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
	"github.com/onthegorentals/onthego/internal/auth"
)

type userResponse struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Provider  string   `json:"provider"`
	Roles     []string `json:"roles"`
	Deleted   bool     `json:"deleted"`
	CreatedAt string   `json:"createdAt"`
}

func newUserResponse(u *auth.User) userResponse {
	return userResponse{
		ID:        u.PublicID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Provider:  u.Provider,
		Roles:     auth.RoleNames(u.Roles),
		Deleted:   u.Deleted,
		CreatedAt: u.CreatedAt.UTC().Format(timeFormat),
	}
}

type updateRolesRequest struct {
	Roles []string `json:"roles"`
}

// UserHandler handles the admin user management endpoints.
type UserHandler struct {
	userRepo auth.UserRepository
	roleRepo auth.RoleRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo auth.UserRepository, roleRepo auth.RoleRepository) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// List handles GET /api/admin/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, newUserResponse(&users[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /api/admin/users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}
	response.Success(w, http.StatusOK, newUserResponse(u))
}

// UpdateRoles handles PUT /api/admin/users/{id}/roles.
func (h *UserHandler) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	errs := validation.ValidateUpdateUserRolesRequest(validation.UpdateUserRolesRequest{Roles: req.Roles})
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return
	}

	roles := make([]auth.Role, 0, len(req.Roles))
	for _, name := range req.Roles {
		role, err := h.roleRepo.FindByName(r.Context(), name)
		if err != nil {
			slog.Error("failed to resolve role", "role", name, "error", err)
			response.FailMessage(w, http.StatusInternalServerError, "Failed to update roles")
			return
		}
		roles = append(roles, *role)
	}

	u.Roles = roles
	if err := h.userRepo.Update(r.Context(), u); err != nil {
		slog.Error("failed to update user roles", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to update roles")
		return
	}

	response.Success(w, http.StatusOK, newUserResponse(u))
}

// Delete handles DELETE /api/admin/users/{id} (soft-delete). Idempotent.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if !u.Deleted {
		u.Deleted = true
		if err := h.userRepo.Update(r.Context(), u); err != nil {
			slog.Error("failed to soft-delete user", "error", err)
			response.FailMessage(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}
	}

	response.NoContent(w)
}

// Restore handles POST /api/admin/users/{id}/restore. Idempotent.
func (h *UserHandler) Restore(w http.ResponseWriter, r *http.Request) {
	u, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if u.Deleted {
		u.Deleted = false
		if err := h.userRepo.Update(r.Context(), u); err != nil {
			slog.Error("failed to restore user", "error", err)
			response.FailMessage(w, http.StatusInternalServerError, "Failed to restore user")
			return
		}
	}

	response.Success(w, http.StatusOK, newUserResponse(u))
}

func (h *UserHandler) lookup(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return nil, false
	}

	u, err := h.userRepo.GetByPublicID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.FailMessage(w, http.StatusNotFound, "User not found")
			return nil, false
		}
		slog.Error("failed to get user", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to get user")
		return nil, false
	}

	return u, true
}
