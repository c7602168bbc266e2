package module

import (
	"context"

	"replyhub/internal/services/comments/domain"
	csvc "replyhub/internal/services/comments/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptCommentsPort struct{ svc csvc.Service }

var _ domain.ServicePort = adaptCommentsPort{}

// CollectUnreplied gathers unreplied rows without writing anything back
func (a adaptCommentsPort) CollectUnreplied(ctx context.Context, in domain.CollectInput) (domain.CollectOutput, error) {
	return a.svc.CollectUnreplied(ctx, in)
}

// WriteReplies writes generated replies into the reply column
func (a adaptCommentsPort) WriteReplies(ctx context.Context, records []domain.ReplyRecord) ([]domain.WriteResult, error) {
	return a.svc.WriteReplies(ctx, records)
}

// ProcessUnreplied runs the collect, generate, write pipeline in batches
func (a adaptCommentsPort) ProcessUnreplied(ctx context.Context, in domain.ProcessInput) (domain.ProcessOutput, error) {
	return a.svc.ProcessUnreplied(ctx, in)
}

// Schema reports the reply column resolution and field inventory
func (a adaptCommentsPort) Schema(ctx context.Context) (domain.SchemaOutput, error) {
	return a.svc.Schema(ctx)
}
