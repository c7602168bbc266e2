// Package http provides http transport for comments
package http

import (
	stdhttp "net/http"

	"replyhub/internal/modkit/httpkit"
	"replyhub/internal/platform/net/middleware"
	"replyhub/internal/services/comments/domain"
	svc "replyhub/internal/services/comments/service"
)

// Register mounts comments endpoints on the given router
// guard may be nil, leaving the write pipeline route open
func Register(r httpkit.Router, s svc.Service, guard middleware.AuthPort) {
	h := &handlers{svc: s}

	// collect only, no generation or writes
	httpkit.PostJSON[domain.CollectInput](r, "/collect", h.collect)

	// reply column resolution and field inventory
	httpkit.Get(r, "/schema", h.schema)

	// batch pipeline writes replies back, so it sits behind the guard
	httpkit.Protected(r, guard, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.ProcessInput](pr, "/process", h.process)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Process unreplied comments in batches
// @Description Collects unreplied rows, generates a reply per row, and writes each reply back
// @Tags Comments
// @Accept json
// @Produce json
// @Param payload body domain.ProcessInput true "Batch tuning"
// @Success 200 {object} domain.ProcessOutput "ok"
// @Router /comments/process [post]
func (h *handlers) process(r *stdhttp.Request, in domain.ProcessInput) (any, error) {
	return h.svc.ProcessUnreplied(r.Context(), in)
}

// @Summary Collect unreplied comments
// @Tags Comments
// @Accept json
// @Produce json
// @Param payload body domain.CollectInput true "Collection target"
// @Success 200 {object} domain.CollectOutput "ok"
// @Router /comments/collect [post]
func (h *handlers) collect(r *stdhttp.Request, in domain.CollectInput) (any, error) {
	return h.svc.CollectUnreplied(r.Context(), in)
}

// @Summary Inspect the reply column resolution
// @Tags Comments
// @Produce json
// @Success 200 {object} domain.SchemaOutput "ok"
// @Router /comments/schema [get]
func (h *handlers) schema(r *stdhttp.Request) (any, error) {
	return h.svc.Schema(r.Context())
}
