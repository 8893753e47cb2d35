// Package http provides http transport for the ingestion pipeline
package http

import (
	stdhttp "net/http"

	"tsudoi/internal/modkit/httpkit"
	perr "tsudoi/internal/platform/errors"
	pnet "tsudoi/internal/platform/net"
	"tsudoi/internal/services/ingest/domain"
)

// Register mounts ingestion endpoints on the given router
func Register(r httpkit.Router, s domain.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/preview", h.previewAll)
	httpkit.PostJSON[RegionInput](r, "/preview/region", h.previewRegion)
	httpkit.PostJSON[CommitInput](r, "/commit", h.commit)
	httpkit.Get(r, "/sources", h.sources)
}

type handlers struct{ svc domain.Service }

// RegionInput selects one registered source for a targeted preview
type RegionInput struct {
	Region string `json:"region" validate:"required"`
}

// CommitInput carries the operator's selection back from a preview
type CommitInput struct {
	Events []domain.ImportableEvent `json:"events" validate:"required,min=1"`
}

func (h *handlers) previewAll(r *stdhttp.Request) (any, error) {
	return h.svc.PreviewAll(r.Context())
}

func (h *handlers) previewRegion(r *stdhttp.Request, in RegionInput) (any, error) {
	return h.svc.PreviewRegion(r.Context(), in.Region)
}

func (h *handlers) commit(r *stdhttp.Request, in CommitInput) (any, error) {
	operator := pnet.UserID(r.Context())
	if operator == "" {
		return nil, perr.Unauthorizedf("missing operator identity")
	}
	return h.svc.CommitSelected(r.Context(), operator, in.Events)
}

func (h *handlers) sources(r *stdhttp.Request) (any, error) {
	return h.svc.ListSources(r.Context()), nil
}
