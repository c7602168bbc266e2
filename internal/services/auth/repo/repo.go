// Package repo provides postgres access for workspace tokens
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"replyhub/internal/modkit/repokit"
	perr "replyhub/internal/platform/errors"
	ptime "replyhub/internal/platform/time"
)

// Token is one stored workspace grant
type Token struct {
	AccessToken   string
	WorkspaceID   string
	WorkspaceName string
	BotID         string

	// ExpiresAt is zero for grants without a lifetime
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Repo defines the repository contract for tokens
type Repo interface {
	Upsert(ctx context.Context, t Token) error
	Latest(ctx context.Context) (Token, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Upsert(ctx context.Context, t Token) error {
	const sql = `
insert into workspace_tokens (access_token, workspace_id, workspace_name, bot_id, expires_at, created_at)
values ($1, $2, $3, $4, $5, now())
on conflict (workspace_id) do update
set access_token = excluded.access_token,
    workspace_name = excluded.workspace_name,
    bot_id = excluded.bot_id,
    expires_at = excluded.expires_at,
    created_at = now()
`
	// a zero ExpiresAt is stored as NULL
	_, err := r.q.Exec(ctx, sql, t.AccessToken, t.WorkspaceID, t.WorkspaceName, t.BotID, ptime.Ptr(t.ExpiresAt.UTC()))
	if err != nil {
		return perr.FromPostgres(err, "token upsert failed")
	}
	return nil
}

func (r *queries) Latest(ctx context.Context) (Token, error) {
	const sql = `
select access_token, workspace_id, workspace_name, bot_id,
       coalesce(expires_at, '0001-01-01T00:00:00Z'::timestamptz), created_at
from workspace_tokens
order by created_at desc
limit 1
`
	var t Token
	row := r.q.QueryRow(ctx, sql)
	if err := row.Scan(&t.AccessToken, &t.WorkspaceID, &t.WorkspaceName, &t.BotID, &t.ExpiresAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, stdsql.ErrNoRows) {
			return Token{}, perr.NotFoundf("no workspace token stored")
		}
		return Token{}, perr.FromPostgres(err, "token lookup failed")
	}
	return t, nil
}
