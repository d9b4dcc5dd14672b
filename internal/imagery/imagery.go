// Package imagery maps person identifiers to photo URLs and checks which
// configured base actually serves them.
package imagery

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"swipetree/internal/platform/metrics"
	"swipetree/pkg/lineage"
	"swipetree/pkg/platform/sentinel"
)

const (
	SourcePrimary     = "primary"
	SourceFallback    = "fallback"
	SourcePlaceholder = "placeholder"

	defaultTimeout = 3 * time.Second
)

// Image is a resolved photo location.
type Image struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Resolver probes image bases in priority order.
type Resolver struct {
	bases       []string
	placeholder string
	http        *http.Client
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Resolver)

func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		if hc != nil {
			r.http = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New creates a Resolver. A placeholder without a scheme is resolved
// against the first base.
func New(bases []string, placeholder string, opts ...Option) *Resolver {
	r := &Resolver{http: &http.Client{Timeout: defaultTimeout}}
	for _, b := range bases {
		if b = strings.TrimRight(strings.TrimSpace(b), "/"); b != "" {
			r.bases = append(r.bases, b)
		}
	}
	r.placeholder = placeholder
	if placeholder != "" && !strings.Contains(placeholder, "://") && len(r.bases) > 0 {
		r.placeholder = r.bases[0] + "/" + strings.TrimLeft(placeholder, "/")
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// URLs returns <base>/<id>.jpg for each base, in priority order.
func (r *Resolver) URLs(id lineage.ID) []string {
	if !lineage.Valid(id) {
		return nil
	}
	out := make([]string, len(r.bases))
	for i, b := range r.bases {
		out[i] = fmt.Sprintf("%s/%s.jpg", b, strings.TrimSpace(id.String()))
	}
	return out
}

// Resolve probes every candidate URL concurrently and returns the
// highest-priority one that answered 2xx. When none does, it returns the
// placeholder together with an error wrapping sentinel.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, id lineage.ID) (Image, error) {
	urls := r.URLs(id)
	ok := make([]bool, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			ok[i] = r.exists(gctx, u)
			return nil
		})
	}
	_ = g.Wait()

	for i, u := range urls {
		if ok[i] {
			source := SourceFallback
			if i == 0 {
				source = SourcePrimary
			}
			r.metrics.IncImageResolution(source)
			return Image{ID: string(id), URL: u, Source: source}, nil
		}
	}

	r.metrics.IncImageResolution(SourcePlaceholder)
	r.logger.DebugContext(ctx, "no image found", "id", string(id), "bases", len(r.bases))
	return Image{ID: string(id), URL: r.placeholder, Source: SourcePlaceholder},
		fmt.Errorf("image for %q: %w", string(id), sentinel.ErrNotFound)
}

func (r *Resolver) exists(ctx context.Context, u string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return false
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
