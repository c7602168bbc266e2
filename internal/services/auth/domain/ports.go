package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Login(ctx context.Context) (LoginOutput, error)
	Callback(ctx context.Context, code string) (CallbackOutput, error)
	SetToken(ctx context.Context, in SetTokenInput) (StatusOutput, error)
	Status(ctx context.Context) (StatusOutput, error)
}

// TokenPort yields the workspace bearer token for outbound calls.
// Satisfies the workspace client's token source seam
type TokenPort interface {
	Token(ctx context.Context) (string, error)
}
