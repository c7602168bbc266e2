// Package service contains the workspace auth workflows: the OAuth grant
// flow, manual token install, and the token source used by outbound calls
package service

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"

	"replyhub/internal/adapters/notion"
	"replyhub/internal/modkit/repokit"
	perr "replyhub/internal/platform/errors"
	"replyhub/internal/platform/logger"
	"replyhub/internal/services/auth/domain"
	"replyhub/internal/services/auth/repo"
)

// Service defines the auth service contract
type Service interface {
	domain.ServicePort
	domain.TokenPort
}

// Config carries the OAuth credentials and the static fallback key
type Config struct {
	OAuth notion.OAuthConfig

	// APIKey is the static integration key used when no grant is stored
	APIKey string

	// ServiceKey guards mutating API routes; empty leaves them open
	ServiceKey string
}

// Svc implements the auth service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
	hc     *http.Client
	log    logger.Logger
	now    func() time.Time
}

// New constructs an auth service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		cfg:    cfg,
		hc:     &http.Client{Timeout: 15 * time.Second},
		log:    *logger.Named("auth"),
		now:    time.Now,
	}
}

// Login returns the authorization URL for the user-facing grant flow
func (s *Svc) Login(context.Context) (domain.LoginOutput, error) {
	if s.cfg.OAuth.ClientID == "" {
		return domain.LoginOutput{}, perr.Configf("oauth client id not configured")
	}
	state := uuid.NewString()
	return domain.LoginOutput{URL: notion.AuthorizeURL(s.cfg.OAuth, state), State: state}, nil
}

// Callback exchanges the authorization code and persists the grant
func (s *Svc) Callback(ctx context.Context, code string) (domain.CallbackOutput, error) {
	if code == "" {
		return domain.CallbackOutput{}, perr.InvalidArgf("authorization code missing")
	}
	grant, err := notion.ExchangeCode(ctx, s.hc, s.cfg.OAuth, code)
	if err != nil {
		return domain.CallbackOutput{}, err
	}
	if err := s.Repo.Upsert(ctx, repo.Token{
		AccessToken:   grant.AccessToken,
		WorkspaceID:   grant.WorkspaceID,
		WorkspaceName: grant.WorkspaceName,
		BotID:         grant.BotID,
		ExpiresAt:     grant.ExpiresAt(s.now()),
	}); err != nil {
		return domain.CallbackOutput{}, err
	}
	s.log.Info().Str("workspace", grant.WorkspaceName).Msg("workspace grant stored")
	return domain.CallbackOutput{
		Success:   true,
		Message:   "successfully authenticated with workspace",
		Workspace: grant.WorkspaceName,
		ExpiresIn: grant.ExpiresIn,
	}, nil
}

// SetToken installs a token by hand, for bootstrap or testing
func (s *Svc) SetToken(ctx context.Context, in domain.SetTokenInput) (domain.StatusOutput, error) {
	if in.Token == "" {
		return domain.StatusOutput{}, perr.InvalidArgf("token is required")
	}
	var expires time.Time
	if in.ExpiresIn > 0 {
		expires = s.now().Add(time.Duration(in.ExpiresIn) * time.Second)
	}
	if err := s.Repo.Upsert(ctx, repo.Token{
		AccessToken:   in.Token,
		WorkspaceID:   "manual",
		WorkspaceName: in.Installer,
		ExpiresAt:     expires,
	}); err != nil {
		return domain.StatusOutput{}, err
	}
	return domain.StatusOutput{Authenticated: true, Source: "manual"}, nil
}

// Status reports whether a usable credential exists and its origin
func (s *Svc) Status(ctx context.Context) (domain.StatusOutput, error) {
	tok, err := s.Repo.Latest(ctx)
	switch {
	case err == nil && s.usable(tok):
		return domain.StatusOutput{Authenticated: true, Source: "oauth", Workspace: tok.WorkspaceName}, nil
	case err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound):
		return domain.StatusOutput{}, err
	}
	if s.cfg.APIKey != "" {
		return domain.StatusOutput{Authenticated: true, Source: "api_key"}, nil
	}
	return domain.StatusOutput{Authenticated: false}, nil
}

// Token yields the bearer token for outbound workspace calls: the stored
// grant when present and unexpired, else the static integration key
func (s *Svc) Token(ctx context.Context) (string, error) {
	tok, err := s.Repo.Latest(ctx)
	if err == nil && s.usable(tok) {
		return tok.AccessToken, nil
	}
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return "", err
	}
	if s.cfg.APIKey != "" {
		s.log.Debug().Msg("no usable workspace grant, using static api key")
		return s.cfg.APIKey, nil
	}
	return "", perr.Unauthorizedf("no workspace credential available, authenticate or configure an api key")
}

// VerifyKey checks a presented bearer credential against the configured
// service key. It matches httpkit.TokenFunc so it can back a guard port.
// A missing ServiceKey rejects everything; callers skip the guard instead.
func (s *Svc) VerifyKey(token string) (string, string, error) {
	if s.cfg.ServiceKey == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.ServiceKey)) != 1 {
		return "", "", perr.Unauthorizedf("invalid service key")
	}
	return "service", "", nil
}

func (s *Svc) usable(t repo.Token) bool {
	return t.AccessToken != "" && (t.ExpiresAt.IsZero() || s.now().Before(t.ExpiresAt))
}
