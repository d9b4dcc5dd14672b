//go:build go1.18

package lineage

import (
	"testing"
)

// FuzzResolver checks that arbitrary input never panics and that the
// structural invariants hold whenever structure can be derived.
func FuzzResolver(f *testing.F) {
	f.Add("140000")
	f.Add("100000.1")
	f.Add("")
	f.Add("000")
	f.Add("18446744073709551615")
	f.Add("99999999999999999999")
	f.Add("1.1.1")
	f.Add("\x00")

	r := NewResolver()
	f.Fuzz(func(t *testing.T, input string) {
		id := ID(input)

		siblings := r.Siblings(id)
		if len(siblings) > 8 {
			t.Fatalf("too many siblings for %q: %d", input, len(siblings))
		}
		for _, s := range siblings {
			if s == ID(MainPart(id)) {
				t.Fatalf("%q listed as its own sibling", input)
			}
		}

		if spouse, ok := r.Spouse(id); ok {
			back, ok := r.Spouse(spouse)
			if !ok || MainPart(back) != MainPart(id) || HasSpouseSuffix(back) != HasSpouseSuffix(id) {
				t.Fatalf("spouse is not an involution for %q: %q -> %q", input, spouse, back)
			}
		}

		if Depth(id) < 1 {
			return
		}
		for _, child := range r.Children(id) {
			if Depth(child) != Depth(id)-1 {
				t.Fatalf("child %q of %q has depth %d", child, input, Depth(child))
			}
			if parent, ok := r.Parent(child); !ok || parent != ID(MainPart(id)) {
				t.Fatalf("parent(%q)=%q, want %q", child, parent, MainPart(id))
			}
		}
	})
}
