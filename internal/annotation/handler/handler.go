// Package handler exposes the label API over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"swipetree/internal/annotation/models"
	"swipetree/internal/platform/metrics"
	"swipetree/internal/platform/middleware"
	dErrors "swipetree/pkg/domain-errors"
	"swipetree/pkg/platform/httputil"
)

const maxBodyBytes = 16 << 10

// Service defines the label operations the handler needs.
type Service interface {
	Get(ctx context.Context, id string) (*models.Label, error)
	Put(ctx context.Context, l models.Label) (*models.Label, error)
}

// SaveResponse acknowledges a write.
type SaveResponse struct {
	OK    bool         `json:"ok"`
	ID    string       `json:"id"`
	Label models.Label `json:"label"`
}

// Handler serves /labels.
type Handler struct {
	logger        *slog.Logger
	labels        Service
	metrics       *metrics.Metrics
	allowedOrigin string
}

// New creates a label Handler.
func New(labels Service, logger *slog.Logger, m *metrics.Metrics, allowedOrigin string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:        logger,
		labels:        labels,
		metrics:       m,
		allowedOrigin: allowedOrigin,
	}
}

// Register registers the label routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	labelRouter := chi.NewRouter()
	labelRouter.Use(middleware.NoStore)
	labelRouter.Use(middleware.CORS(h.allowedOrigin))
	labelRouter.Use(middleware.Latency(h.metrics))
	labelRouter.Get("/", h.handleGet)
	labelRouter.Put("/", h.handlePut)
	labelRouter.Post("/", h.handlePut)
	labelRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "Method not allowed"})
	})

	r.Mount("/labels", labelRouter)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := r.URL.Query().Get("id")

	l, err := h.labels.Get(ctx, id)
	switch {
	case err == nil:
		httputil.WriteJSON(w, http.StatusOK, l)
	case dErrors.Is(err, dErrors.CodeNotFound):
		httputil.WriteJSON(w, http.StatusOK, models.Label{ID: id})
	case dErrors.Is(err, dErrors.CodeBadRequest):
		h.logger.WarnContext(ctx, "invalid label request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
	default:
		httputil.WriteError(w, err)
	}
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req models.Label
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid label body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	saved, err := h.labels.Put(ctx, req)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) || dErrors.Is(err, dErrors.CodeValidation) {
			h.logger.WarnContext(ctx, "rejected label",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SaveResponse{OK: true, ID: saved.ID, Label: *saved})
}
