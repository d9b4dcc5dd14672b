// Package relatives serves the relationship query API.
package relatives

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"swipetree/internal/annotation/models"
	"swipetree/internal/imagery"
	"swipetree/internal/platform/metrics"
	"swipetree/internal/platform/middleware"
	dErrors "swipetree/pkg/domain-errors"
	"swipetree/pkg/lineage"
	"swipetree/pkg/platform/httputil"
)

// LabelReader loads labels in bulk.
type LabelReader interface {
	GetMany(ctx context.Context, ids []string) (map[string]models.Label, error)
}

// ImageResolver finds the photo for one person.
type ImageResolver interface {
	Resolve(ctx context.Context, id lineage.ID) (imagery.Image, error)
}

// Response is the body of GET /api/v1/people/{id}/relatives.
type Response struct {
	lineage.Relatives
	Image  imagery.Image           `json:"image"`
	Labels map[string]models.Label `json:"labels"`
}

// Handler answers relationship queries.
type Handler struct {
	resolver *lineage.Resolver
	labels   LabelReader
	images   ImageResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a relatives Handler.
func New(resolver *lineage.Resolver, labels LabelReader, images ImageResolver, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{resolver: resolver, labels: labels, images: images, logger: logger, metrics: m}
}

// Register registers the relatives routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.With(middleware.Latency(h.metrics)).Get("/api/v1/people/{id}/relatives", h.handleRelatives)
}

func (h *Handler) handleRelatives(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := lineage.ID(chi.URLParam(r, "id"))

	if !lineage.Valid(id) {
		h.logger.WarnContext(ctx, "invalid person id",
			"request_id", requestID,
			"id", string(id),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid person id"))
		return
	}

	resp := Response{Relatives: h.resolver.Relatives(id)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		labels, err := h.labels.GetMany(gctx, labelIDs(resp.Relatives))
		if err != nil {
			return err
		}
		resp.Labels = labels
		return nil
	})
	g.Go(func() error {
		// A missing photo still yields the placeholder.
		resp.Image, _ = h.images.Resolve(gctx, resp.ID)
		return nil
	})
	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(ctx, "failed to load relatives",
			"request_id", requestID,
			"id", string(id),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if resp.Labels == nil {
		resp.Labels = map[string]models.Label{}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func labelIDs(rel lineage.Relatives) []string {
	ids := []string{rel.ID.String()}
	if rel.Spouse != "" {
		ids = append(ids, rel.Spouse.String())
	}
	for _, group := range [][]lineage.ID{rel.Parents, rel.Children, rel.Siblings} {
		for _, id := range group {
			ids = append(ids, id.String())
		}
	}
	return ids
}
