package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "replyhub/internal/platform/errors"
)

// OAuthConfig carries the integration credentials for the code exchange
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// BaseURL overrides the Notion host, for tests
	BaseURL string
}

// GrantOwner identifies the workspace user who authorized the grant
type GrantOwner struct {
	User struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Type      string `json:"type"`
		Object    string `json:"object"`
	} `json:"user"`
}

// TokenGrant is the token endpoint response
type TokenGrant struct {
	AccessToken          string     `json:"access_token"`
	TokenType            string     `json:"token_type"`
	BotID                string     `json:"bot_id"`
	WorkspaceName        string     `json:"workspace_name"`
	WorkspaceIcon        string     `json:"workspace_icon"`
	WorkspaceID          string     `json:"workspace_id"`
	Owner                GrantOwner `json:"owner"`
	DuplicatedTemplateID string     `json:"duplicated_template_id"`
	ExpiresIn            int64      `json:"expires_in"`
}

// AuthorizeURL builds the user-facing authorization URL for the grant flow
func AuthorizeURL(cfg OAuthConfig, state string) string {
	base := cfg.BaseURL
	if base == "" {
		base = baseURLDefault
	}
	q := url.Values{}
	q.Set("client_id", cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", cfg.RedirectURI)
	q.Set("state", state)
	return base + "/v1/oauth/authorize?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token.
// The token endpoint authenticates with basic auth over client credentials
func ExchangeCode(ctx context.Context, hc *http.Client, cfg OAuthConfig, code string) (TokenGrant, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return TokenGrant{}, perr.Configf("notion oauth credentials not configured")
	}
	base := cfg.BaseURL
	if base == "" {
		base = baseURLDefault
	}
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":   "authorization_code",
		"code":         code,
		"redirect_uri": cfg.RedirectURI,
	})
	if err != nil {
		return TokenGrant{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "oauth marshal failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/oauth/token", bytes.NewReader(body))
	if err != nil {
		return TokenGrant{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "oauth new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)
	req.SetBasicAuth(cfg.ClientID, cfg.ClientSecret)

	resp, err := hc.Do(req)
	if err != nil {
		return TokenGrant{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "oauth token exchange failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return TokenGrant{}, perr.Remotef("oauth token exchange status %d body %s", resp.StatusCode, string(tail))
	}

	var grant TokenGrant
	if err := decodeBody(resp.Body, &grant); err != nil {
		return TokenGrant{}, perr.Wrapf(err, perr.ErrorCodeRemote, "oauth token decode failed")
	}
	if grant.AccessToken == "" {
		return TokenGrant{}, perr.Remotef("oauth token exchange returned no access token")
	}
	return grant, nil
}

// ExpiresAt converts the relative lifetime to an absolute instant.
// Grants without a lifetime never expire
func (g TokenGrant) ExpiresAt(now time.Time) time.Time {
	if g.ExpiresIn <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(g.ExpiresIn) * time.Second)
}
