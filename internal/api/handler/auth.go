package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/onthegorentals/onthego/internal/api/middleware"
	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
	"github.com/onthegorentals/onthego/internal/auth"
)

const stateCookieName = "otg_oauth_state"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type sessionResponse struct {
	AccessToken          string   `json:"accessToken"`
	TokenType            string   `json:"tokenType"`
	AccessTokenExpiresIn int64    `json:"accessTokenExpiresIn"`
	Email                string   `json:"email"`
	Roles                []string `json:"roles"`
}

// AuthHandler handles registration, the session lifecycle and the
// Google OAuth2 bridge. Access tokens travel in the response body;
// refresh tokens only ever travel in an HTTP-only cookie.
type AuthHandler struct {
	sessions            *auth.Service
	google              *auth.GoogleOAuth
	cookieName          string
	cookieSecure        bool
	frontendCallbackURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *auth.Service, google *auth.GoogleOAuth, cookieName string, cookieSecure bool, frontendCallbackURL string) *AuthHandler {
	return &AuthHandler{
		sessions:            sessions,
		google:              google,
		cookieName:          cookieName,
		cookieSecure:        cookieSecure,
		frontendCallbackURL: frontendCallbackURL,
	}
}

func newSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		AccessToken:          s.AccessToken,
		TokenType:            "Bearer",
		AccessTokenExpiresIn: int64(time.Until(s.AccessTokenExpiresAt).Seconds()),
		Email:                s.User.Email,
		Roles:                auth.RoleNames(s.User.Roles),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return
	}

	u, err := h.sessions.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			response.Fail(w, http.StatusConflict, response.Error{Field: "email", Message: "email already exists"})
			return
		}
		slog.Error("failed to register user", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.Success(w, http.StatusCreated, newUserResponse(u))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	errs := validation.ValidateLoginRequest(validation.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			response.FailMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("failed to log in user", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setRefreshCookie(w, session.RefreshToken, session.RefreshExpiresAt)
	response.Success(w, http.StatusOK, newSessionResponse(session))
}

// Refresh handles POST /api/auth/refresh. The refresh token is rotated:
// the cookie is replaced along with the stored token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		response.FailMessage(w, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	session, err := h.sessions.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			h.clearRefreshCookie(w)
			response.FailMessage(w, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		slog.Error("failed to refresh session", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to refresh session")
		return
	}

	h.setRefreshCookie(w, session.RefreshToken, session.RefreshExpiresAt)
	response.Success(w, http.StatusOK, newSessionResponse(session))
}

// Logout handles POST /api/auth/logout. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.FailMessage(w, http.StatusUnauthorized, "Bearer token is required")
		return
	}

	if err := h.sessions.Logout(r.Context(), identity.UserID); err != nil {
		slog.Error("failed to log out user", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	h.clearRefreshCookie(w)
	response.NoContent(w)
}

// GoogleRedirect handles GET /api/auth/oauth2/google.
func (h *AuthHandler) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	state, err := h.google.StateToken()
	if err != nil {
		slog.Error("failed to generate oauth state", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to start Google login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth/oauth2",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusFound)
}

// GoogleCallback handles GET /api/auth/oauth2/callback. On success the
// browser is redirected to the frontend callback URL with the access
// token as a query parameter; the refresh token rides on the redirect
// response as a cookie.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		response.FailMessage(w, http.StatusUnauthorized, "OAuth state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.FailMessage(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	tok, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("failed to exchange auth code", "error", err)
		response.FailMessage(w, http.StatusUnauthorized, "Google login failed")
		return
	}

	info, err := h.google.FetchUserInfo(r.Context(), tok)
	if err != nil {
		slog.Error("failed to fetch user info", "error", err)
		response.FailMessage(w, http.StatusUnauthorized, "Google login failed")
		return
	}

	u, err := h.sessions.EnsureFederatedUser(r.Context(), auth.ProviderGoogle, info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			response.FailMessage(w, http.StatusUnauthorized, "Account is deactivated")
			return
		}
		slog.Error("failed to provision federated user", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Google login failed")
		return
	}

	session, err := h.sessions.IssueSession(r.Context(), u)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Google login failed")
		return
	}

	h.setRefreshCookie(w, session.RefreshToken, session.RefreshExpiresAt)

	callback, err := url.Parse(h.frontendCallbackURL)
	if err != nil {
		slog.Error("invalid frontend callback URL", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Google login failed")
		return
	}
	q := callback.Query()
	q.Set("accessToken", session.AccessToken)
	callback.RawQuery = q.Encode()

	http.Redirect(w, r, callback.String(), http.StatusFound)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/api/auth",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
