package lineage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyIDs = []ID{
	"100000", "140000", "141000", "141500", "149990",
	"5", "20", "900", "123456000", "100000.1", "140000.1", "000",
}

func TestParent(t *testing.T) {
	r := NewResolver()

	t.Run("derives parent by zeroing the next digit", func(t *testing.T) {
		parent, ok := r.Parent("140000")
		require.True(t, ok)
		assert.Equal(t, ID("100000"), parent)

		parent, ok = r.Parent("141000")
		require.True(t, ok)
		assert.Equal(t, ID("140000"), parent)
	})

	t.Run("root has no parent", func(t *testing.T) {
		_, ok := r.Parent("100000")
		assert.False(t, ok)
		_, ok = r.Parent("5")
		assert.False(t, ok)
	})

	t.Run("spouse suffix resolves through main part", func(t *testing.T) {
		parent, ok := r.Parent("141000.1")
		require.True(t, ok)
		assert.Equal(t, ID("140000"), parent)
	})

	t.Run("keeps zero padded width", func(t *testing.T) {
		parent, ok := r.Parent("0140000")
		require.True(t, ok)
		assert.Equal(t, ID("0100000"), parent)
	})

	t.Run("degenerate inputs have no parent", func(t *testing.T) {
		for _, id := range []ID{"", "000", "abc", "12.5", "99999999999999999999999"} {
			_, ok := r.Parent(id)
			assert.False(t, ok, "id %q", id)
		}
	})
}

func TestChildren(t *testing.T) {
	r := NewResolver()

	t.Run("enumerates nine children one generation down", func(t *testing.T) {
		children := r.Children("140000")
		require.Len(t, children, 9)
		assert.Equal(t, ID("141000"), children[0])
		assert.Equal(t, ID("149000"), children[8])
	})

	t.Run("leaf has no children", func(t *testing.T) {
		assert.Empty(t, r.Children("141511"))
	})

	t.Run("all-zero id has no children", func(t *testing.T) {
		assert.Empty(t, r.Children("000"))
		assert.Empty(t, r.Children("0.1"))
	})

	t.Run("invalid id has no children", func(t *testing.T) {
		assert.Empty(t, r.Children("x000"))
		assert.Empty(t, r.Children(""))
	})

	t.Run("fan-out is configurable and clamped", func(t *testing.T) {
		assert.Len(t, NewResolver(WithMaxFanOut(3)).Children("140000"), 3)
		assert.Len(t, NewResolver(WithMaxFanOut(42)).Children("140000"), 9)
		assert.Len(t, NewResolver(WithMaxFanOut(0)).Children("140000"), 1)
	})
}

func TestSiblings(t *testing.T) {
	r := NewResolver()

	t.Run("cohort under a parent excludes self", func(t *testing.T) {
		siblings := r.Siblings("140000")
		require.Len(t, siblings, 8)
		assert.NotContains(t, siblings, ID("140000"))
		assert.Contains(t, siblings, ID("110000"))
		assert.Contains(t, siblings, ID("190000"))
	})

	t.Run("root cohort uses the top level step", func(t *testing.T) {
		siblings := r.Siblings("100000")
		require.Len(t, siblings, 8)
		assert.Equal(t, ID("200000"), siblings[0])
		assert.Equal(t, ID("900000"), siblings[7])
	})

	t.Run("spouse suffix is excluded through its main part", func(t *testing.T) {
		assert.NotContains(t, r.Siblings("140000.1"), ID("140000"))
	})

	t.Run("invalid and zero ids have no cohort", func(t *testing.T) {
		assert.Empty(t, r.Siblings("abc"))
		assert.Empty(t, r.Siblings("000"))
	})
}

func TestSpouse(t *testing.T) {
	t.Run("suffix convention toggles", func(t *testing.T) {
		r := NewResolver()
		spouse, ok := r.Spouse("140000")
		require.True(t, ok)
		assert.Equal(t, ID("140000.1"), spouse)

		spouse, ok = r.Spouse("140000.1")
		require.True(t, ok)
		assert.Equal(t, ID("140000"), spouse)
	})

	t.Run("override wins over convention", func(t *testing.T) {
		o := NewOverrides()
		require.NoError(t, o.Pair("140000", "530000.1"))
		r := NewResolver(WithOverrides(o))

		spouse, ok := r.Spouse("140000")
		require.True(t, ok)
		assert.Equal(t, ID("530000.1"), spouse)

		spouse, ok = r.Spouse("530000.1")
		require.True(t, ok)
		assert.Equal(t, ID("140000"), spouse)
	})

	t.Run("conventional partner of an overridden id has no spouse", func(t *testing.T) {
		o := NewOverrides()
		require.NoError(t, o.Pair("140000", "530000.1"))
		r := NewResolver(WithOverrides(o))

		_, ok := r.Spouse("140000.1")
		assert.False(t, ok)
	})

	t.Run("invalid id has no spouse", func(t *testing.T) {
		_, ok := NewResolver().Spouse("abc")
		assert.False(t, ok)
	})
}

func TestParents(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, []ID{"100000", "100000.1"}, r.Parents("140000"))
	assert.Empty(t, r.Parents("100000"))

	o := NewOverrides()
	require.NoError(t, o.Pair("100000", "700000.1"))
	r = NewResolver(WithOverrides(o))
	assert.Equal(t, []ID{"100000", "700000.1"}, r.Parents("140000"))
}

func TestRelatives(t *testing.T) {
	rel := NewResolver().Relatives("140000")
	assert.True(t, rel.Valid)
	assert.Equal(t, 4, rel.Depth)
	assert.Equal(t, ID("100000"), rel.Parent)
	assert.Equal(t, ID("140000.1"), rel.Spouse)
	assert.Len(t, rel.Children, 9)
	assert.Len(t, rel.Siblings, 8)

	invalid := NewResolver().Relatives("nope")
	assert.False(t, invalid.Valid)
	assert.NotNil(t, invalid.Children)
	assert.Empty(t, invalid.Children)
	assert.Empty(t, invalid.Parents)
}

// TestResolverProperties checks the structural invariants over a spread of
// identifiers at different generations.
func TestResolverProperties(t *testing.T) {
	r := NewResolver()
	for _, id := range propertyIDs {
		t.Run(string(id), func(t *testing.T) {
			self := ID(MainPart(id))
			if Depth(id) >= 1 {
				for _, child := range r.Children(id) {
					assert.Equal(t, Depth(id)-1, Depth(child), "child %s", child)
					parent, ok := r.Parent(child)
					require.True(t, ok, "child %s", child)
					assert.Equal(t, self, parent, "child %s", child)
				}
			}

			siblings := r.Siblings(id)
			assert.LessOrEqual(t, len(siblings), 8)
			assert.NotContains(t, siblings, id)
			assert.NotContains(t, siblings, self)

			spouse, ok := r.Spouse(id)
			require.True(t, ok)
			back, ok := r.Spouse(spouse)
			require.True(t, ok)
			assert.Equal(t, ID(strings.TrimSpace(string(id))), back)
		})
	}
}
