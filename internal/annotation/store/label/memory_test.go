package label

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"swipetree/internal/annotation/models"
	"swipetree/pkg/platform/sentinel"
)

type LabelStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *LabelStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestLabelStoreSuite(t *testing.T) {
	suite.Run(t, new(LabelStoreSuite))
}

func (s *LabelStoreSuite) TestFindByID() {
	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, "140000")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns a copy of the stored label", func() {
		s.Require().NoError(s.store.Upsert(s.ctx, &models.Label{ID: "140000", Name: "Ada"}))

		found, err := s.store.FindByID(s.ctx, "140000")
		s.Require().NoError(err)
		found.Name = "mutated"

		again, err := s.store.FindByID(s.ctx, "140000")
		s.Require().NoError(err)
		s.Equal("Ada", again.Name)
	})
}

func (s *LabelStoreSuite) TestUpsertReplaces() {
	s.Require().NoError(s.store.Upsert(s.ctx, &models.Label{ID: "140000", Name: "Ada", DOB: "1815"}))
	s.Require().NoError(s.store.Upsert(s.ctx, &models.Label{ID: "140000", Name: "Ada Lovelace"}))

	found, err := s.store.FindByID(s.ctx, "140000")
	s.Require().NoError(err)
	s.Equal("Ada Lovelace", found.Name)
	s.Empty(found.DOB)
}

func (s *LabelStoreSuite) TestFindManySkipsMissing() {
	s.Require().NoError(s.store.Upsert(s.ctx, &models.Label{ID: "140000", Name: "Ada"}))
	s.Require().NoError(s.store.Upsert(s.ctx, &models.Label{ID: "140000.1", Name: "William"}))

	got, err := s.store.FindMany(s.ctx, []string{"140000", "141000", "140000.1"})
	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal("William", got["140000.1"].Name)
}

func (s *LabelStoreSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.store.Upsert(s.ctx, &models.Label{ID: "140000", Name: "Ada"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.store.FindMany(s.ctx, []string{"140000"})
		}()
	}
	wg.Wait()

	found, err := s.store.FindByID(s.ctx, "140000")
	s.Require().NoError(err)
	s.Equal("Ada", found.Name)
}
