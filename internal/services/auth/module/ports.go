package module

import (
	"context"

	"replyhub/internal/platform/net/middleware"
	"replyhub/internal/services/auth/domain"
	authsvc "replyhub/internal/services/auth/service"
)

// Ports exposes auth capabilities to sibling modules
type Ports struct {
	// Tokens yields the outbound workspace credential
	Tokens domain.TokenPort

	// Guard protects mutating routes; nil when no service key is configured
	Guard middleware.AuthPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptAuthPort narrows the service to the token source other modules consume
type adaptAuthPort struct{ svc authsvc.Service }

var _ domain.TokenPort = adaptAuthPort{}

// Token returns the workspace credential for outbound API calls
func (a adaptAuthPort) Token(ctx context.Context) (string, error) {
	return a.svc.Token(ctx)
}
