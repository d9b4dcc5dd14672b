package imagery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipetree/internal/platform/metrics"
	"swipetree/pkg/lineage"
	"swipetree/pkg/platform/sentinel"
)

// imageServer serves HEAD for the listed ids only.
func imageServer(t *testing.T, ids ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	have := make(map[string]bool, len(ids))
	for _, id := range ids {
		have["/"+id+".jpg"] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodHead || !have[r.URL.Path] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestURLs(t *testing.T) {
	r := New([]string{"https://cdn.example/", " ", "https://raw.example"}, "placeholder.jpg")

	assert.Equal(t, []string{
		"https://cdn.example/140000.1.jpg",
		"https://raw.example/140000.1.jpg",
	}, r.URLs("140000.1"))
	assert.Nil(t, r.URLs("abc"))
	assert.Equal(t, "https://cdn.example/placeholder.jpg", r.placeholder)
}

func TestResolvePrefersPrimary(t *testing.T) {
	primary, _ := imageServer(t, "140000")
	fallback, _ := imageServer(t, "140000")
	m := metrics.New(prometheus.NewRegistry())

	img, err := New([]string{primary.URL, fallback.URL}, "", WithMetrics(m)).Resolve(context.Background(), "140000")
	require.NoError(t, err)
	assert.Equal(t, primary.URL+"/140000.jpg", img.URL)
	assert.Equal(t, SourcePrimary, img.Source)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImageResolutions.WithLabelValues(SourcePrimary)))
}

func TestResolveFallsBack(t *testing.T) {
	primary, _ := imageServer(t)
	fallback, _ := imageServer(t, "140000.1")

	img, err := New([]string{primary.URL, fallback.URL}, "").Resolve(context.Background(), "140000.1")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, img.Source)
	assert.True(t, strings.HasPrefix(img.URL, fallback.URL))
}

func TestResolvePlaceholder(t *testing.T) {
	primary, _ := imageServer(t)

	img, err := New([]string{primary.URL}, "https://static.example/none.jpg").Resolve(context.Background(), "140000")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Equal(t, SourcePlaceholder, img.Source)
	assert.Equal(t, "https://static.example/none.jpg", img.URL)
}

func TestResolveInvalidIDSkipsProbing(t *testing.T) {
	srv, hits := imageServer(t, "140000")

	img, err := New([]string{srv.URL}, "").Resolve(context.Background(), lineage.ID(""))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Equal(t, SourcePlaceholder, img.Source)
	assert.Zero(t, hits.Load())
}
