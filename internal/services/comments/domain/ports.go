package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	CollectUnreplied(ctx context.Context, in CollectInput) (CollectOutput, error)
	WriteReplies(ctx context.Context, records []ReplyRecord) ([]WriteResult, error)
	ProcessUnreplied(ctx context.Context, in ProcessInput) (ProcessOutput, error)
	Schema(ctx context.Context) (SchemaOutput, error)
}
