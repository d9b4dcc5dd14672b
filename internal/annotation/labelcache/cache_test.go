package labelcache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"swipetree/internal/annotation/models"
	"swipetree/internal/navigation"
	"swipetree/internal/navigation/mocks"
	"swipetree/pkg/platform/sentinel"
)

var _ navigation.Labels = (*Cache)(nil)

var errDown = fmt.Errorf("dial tcp: %w", sentinel.ErrUnavailable)

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh read is cached", func(t *testing.T) {
		remote := mocks.NewMockLabels(gomock.NewController(t))
		remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{ID: "140000", Name: "Ada"}, nil)

		c := New(remote)
		l, err := c.Get(ctx, "140000")
		require.NoError(t, err)
		assert.Equal(t, "Ada", l.Name)

		cached, ok := c.Peek("140000")
		assert.True(t, ok)
		assert.Equal(t, l, cached)
	})

	t.Run("failure serves the stale copy", func(t *testing.T) {
		remote := mocks.NewMockLabels(gomock.NewController(t))
		gomock.InOrder(
			remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{ID: "140000", Name: "Ada"}, nil),
			remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{}, errDown),
		)

		c := New(remote)
		_, err := c.Get(ctx, "140000")
		require.NoError(t, err)

		l, err := c.Get(ctx, "140000")
		assert.ErrorIs(t, err, sentinel.ErrStale)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.Equal(t, "Ada", l.Name)
	})

	t.Run("failure without a copy is returned as is", func(t *testing.T) {
		remote := mocks.NewMockLabels(gomock.NewController(t))
		remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{}, errDown)

		_, err := New(remote).Get(ctx, "140000")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.False(t, errors.Is(err, sentinel.ErrStale))
	})

	t.Run("not found drops the cached copy", func(t *testing.T) {
		remote := mocks.NewMockLabels(gomock.NewController(t))
		gomock.InOrder(
			remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{ID: "140000", Name: "Ada"}, nil),
			remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{}, sentinel.ErrNotFound),
		)

		c := New(remote)
		_, _ = c.Get(ctx, "140000")
		_, err := c.Get(ctx, "140000")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, ok := c.Peek("140000")
		assert.False(t, ok)
	})
}

func TestSet(t *testing.T) {
	ctx := context.Background()

	t.Run("successful write replaces the copy", func(t *testing.T) {
		remote := mocks.NewMockLabels(gomock.NewController(t))
		remote.EXPECT().Set(gomock.Any(), models.Label{ID: "140000", Name: "Ada"}).Return(nil)

		c := New(remote)
		require.NoError(t, c.Set(ctx, models.Label{ID: "140000", Name: "Ada"}))
		l, ok := c.Peek("140000")
		assert.True(t, ok)
		assert.Equal(t, "Ada", l.Name)
	})

	t.Run("failed write keeps the previous copy", func(t *testing.T) {
		remote := mocks.NewMockLabels(gomock.NewController(t))
		remote.EXPECT().Get(gomock.Any(), "140000").Return(models.Label{ID: "140000", Name: "Ada"}, nil)
		remote.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errDown)

		c := New(remote)
		_, _ = c.Get(ctx, "140000")
		err := c.Set(ctx, models.Label{ID: "140000", Name: "Ada Lovelace"})
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)

		l, _ := c.Peek("140000")
		assert.Equal(t, "Ada", l.Name)
	})
}

func TestPrefetch(t *testing.T) {
	remote := mocks.NewMockLabels(gomock.NewController(t))
	remote.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (models.Label, error) {
		if id == "142000" {
			return models.Label{}, errDown
		}
		return models.Label{ID: id, Name: "n" + id}, nil
	}).Times(3)

	c := New(remote)
	require.NoError(t, c.Prefetch(context.Background(), []string{"141000", "142000", "143000"}))

	_, ok := c.Peek("141000")
	assert.True(t, ok)
	_, ok = c.Peek("142000")
	assert.False(t, ok)
	_, ok = c.Peek("143000")
	assert.True(t, ok)
}

func TestPrefetchCancelled(t *testing.T) {
	remote := mocks.NewMockLabels(gomock.NewController(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(remote).Prefetch(ctx, []string{"141000"})
	assert.ErrorIs(t, err, context.Canceled)
}
