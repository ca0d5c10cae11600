package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserInfo holds the attributes the provider returns after a successful
// federated authentication.
type UserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleOAuth drives the Google auth-code flow for the OAuth2 bridge.
type GoogleOAuth struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewGoogleOAuth creates a GoogleOAuth. With an empty client ID the
// bridge is disabled and its routes are not mounted.
func NewGoogleOAuth(clientID, clientSecret, redirectURL string) *GoogleOAuth {
	return &GoogleOAuth{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
	}
}

// Enabled reports whether Google login is configured.
func (g *GoogleOAuth) Enabled() bool {
	return g.conf.ClientID != ""
}

// StateToken generates the random state value carried through the
// redirect round trip.
func (g *GoogleOAuth) StateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating state token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// AuthURL returns the provider URL to redirect the browser to.
func (g *GoogleOAuth) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// Exchange trades the auth code for a provider token.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging auth code: %w", err)
	}
	return tok, nil
}

// FetchUserInfo retrieves the federated identity's profile attributes.
func (g *GoogleOAuth) FetchUserInfo(ctx context.Context, tok *oauth2.Token) (*UserInfo, error) {
	resp, err := g.conf.Client(ctx, tok).Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d", resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("user info response missing email")
	}

	return &info, nil
}
