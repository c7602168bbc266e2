// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"

	"replyhub/internal/modkit/httpkit"
	"replyhub/internal/platform/net/middleware"
	"replyhub/internal/services/auth/domain"
	svc "replyhub/internal/services/auth/service"
)

// Register mounts auth endpoints on the given router
// guard may be nil, leaving the token install route open
func Register(r httpkit.Router, s svc.Service, guard middleware.AuthPort) {
	h := &handlers{svc: s}

	// browser entry point for the grant flow
	r.Get("/login", httpkit.Handle(h.login))

	// redirect target for the workspace authorize page
	httpkit.Get(r, "/callback", h.callback)

	httpkit.Get(r, "/status", h.status)

	// manual token install mutates the stored credential
	httpkit.Protected(r, guard, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.SetTokenInput](pr, "/token", h.setToken)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Start the workspace OAuth flow
// @Description Redirects the browser to the workspace authorization page
// @Tags Auth
// @Success 302 {object} domain.LoginOutput "redirect"
// @Router /auth/login [get]
func (h *handlers) login(r *stdhttp.Request) httpkit.Response {
	out, err := h.svc.Login(r.Context())
	if err != nil {
		return httpkit.Error(err)
	}
	hdr := stdhttp.Header{}
	hdr.Set("Location", out.URL)
	return httpkit.Response{Status: stdhttp.StatusFound, Header: hdr, Body: out}
}

// @Summary Complete the workspace OAuth flow
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} domain.CallbackOutput "ok"
// @Router /auth/callback [get]
func (h *handlers) callback(r *stdhttp.Request) (any, error) {
	return h.svc.Callback(r.Context(), r.URL.Query().Get("code"))
}

// @Summary Install a workspace token manually
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.SetTokenInput true "Token"
// @Success 200 {object} domain.StatusOutput "ok"
// @Router /auth/token [post]
func (h *handlers) setToken(r *stdhttp.Request, in domain.SetTokenInput) (any, error) {
	// attribute the install to the authenticated principal when guarded
	if uid, err := httpkit.User(r); err == nil {
		in.Installer = uid
	}
	return h.svc.SetToken(r.Context(), in)
}

// @Summary Report authentication status
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.StatusOutput "ok"
// @Router /auth/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context())
}
