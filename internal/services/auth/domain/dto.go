// Package domain holds DTOs for auth http and service contracts
package domain

// LoginOutput carries the authorization URL for the grant flow
type LoginOutput struct {
	URL   string `json:"url" example:"https://api.notion.com/v1/oauth/authorize?client_id=..."`
	State string `json:"state" example:"1f4f9f9e-8d1a-4e2f-9f64-0a1b2c3d4e5f"`
}

// CallbackOutput reports a completed code exchange
type CallbackOutput struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"successfully authenticated with workspace"`
	Workspace string `json:"workspace,omitempty" example:"Acme Inc"`
	ExpiresIn int64  `json:"expires_in,omitempty" example:"3600"`
}

// SetTokenInput manually installs a token, for bootstrap or testing
type SetTokenInput struct {
	Token     string `json:"token" validate:"required" example:"secret_abc123"`
	ExpiresIn int64  `json:"expires_in,omitempty" validate:"omitempty,min=1" example:"3600"`

	// Installer is the authenticated principal, set by the transport
	Installer string `json:"-"`
}

// StatusOutput reports whether a usable credential exists and where it came from
type StatusOutput struct {
	Authenticated bool   `json:"authenticated" example:"true"`
	Source        string `json:"source,omitempty" example:"oauth"`
	Workspace     string `json:"workspace,omitempty" example:"Acme Inc"`
}
