package service

import (
	"context"

	"replyhub/internal/adapters/notion"
)

// WorkspacePort is the slice of the workspace client the service consumes.
// *notion.Client satisfies it
type WorkspacePort interface {
	RetrieveDatabase(ctx context.Context, databaseID string) (notion.Database, error)
	QueryDatabase(ctx context.Context, databaseID, startCursor string, pageSize int) (notion.QueryPage, error)
	UpdatePageProperties(ctx context.Context, pageID string, props map[string]notion.PropertyWrite) error
}

// Generator drafts a reply for one comment. Implementations never fail;
// they degrade to a fixed fallback string instead
type Generator interface {
	Generate(ctx context.Context, comment, username string) string
}
