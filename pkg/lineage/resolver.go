package lineage

// DefaultMaxFanOut is the fixed number of children or siblings a generation
// level can hold: one per non-zero decimal digit.
const DefaultMaxFanOut = 9

// Resolver derives relatives of an identifier. The zero value is not usable;
// construct with NewResolver.
type Resolver struct {
	overrides *Overrides
	maxFanOut int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverrides installs an explicit spouse table consulted before the
// suffix convention.
func WithOverrides(o *Overrides) Option {
	return func(r *Resolver) {
		r.overrides = o
	}
}

// WithMaxFanOut bounds the number of children enumerated per generation.
// Values outside 1..9 are clamped.
func WithMaxFanOut(n int) Option {
	return func(r *Resolver) {
		r.maxFanOut = clampFanOut(n)
	}
}

// NewResolver constructs a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{maxFanOut: DefaultMaxFanOut}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// MaxFanOut returns the configured fan-out bound.
func (r *Resolver) MaxFanOut() int {
	return r.maxFanOut
}

// Parent returns the single parent of id. ok is false at the root and for
// identifiers without derivable structure.
func (r *Resolver) Parent(id ID) (parent ID, ok bool) {
	base, valid := Value(id)
	if !valid {
		return "", false
	}
	step, ok := Step(Depth(id) + 1)
	if !ok {
		return "", false
	}
	head := (base / step) * step
	if head == 0 || head == base {
		return "", false
	}
	return format(head, len(MainPart(id))), true
}

// Children enumerates the candidate children of id. Leaves (depth 0),
// all-zero identifiers and invalid identifiers have none. Whether a candidate exists is for the
// caller to decide.
func (r *Resolver) Children(id ID) []ID {
	base, valid := Value(id)
	if !valid || base == 0 {
		return nil
	}
	d := Depth(id)
	if d < 1 {
		return nil
	}
	step, ok := Step(d - 1)
	if !ok {
		return nil
	}
	width := len(MainPart(id))
	children := make([]ID, 0, r.maxFanOut)
	for n := uint64(1); n <= uint64(r.maxFanOut); n++ {
		v, ok := addMul(base, n, step)
		if !ok {
			break
		}
		children = append(children, format(v, width))
	}
	return children
}

// Siblings returns the cohort of id without id itself. At the root the
// cohort is every k*10^depth within the fan-out bound. Identifiers whose
// value is zero have no cohort.
func (r *Resolver) Siblings(id ID) []ID {
	base, valid := Value(id)
	if !valid || base == 0 {
		return nil
	}
	self := ID(MainPart(id))

	var cohort []ID
	if parent, ok := r.Parent(id); ok {
		cohort = r.Children(parent)
	} else {
		step, ok := Step(Depth(id))
		if !ok {
			return nil
		}
		width := len(self)
		for k := uint64(1); k <= uint64(r.maxFanOut); k++ {
			v, ok := addMul(0, k, step)
			if !ok {
				break
			}
			cohort = append(cohort, format(v, width))
		}
	}

	siblings := make([]ID, 0, len(cohort))
	for _, c := range cohort {
		if c != self {
			siblings = append(siblings, c)
		}
	}
	return siblings
}

// Spouse resolves the partner of id: the override table first, then the
// suffix toggle. For valid identifiers Spouse is an involution.
func (r *Resolver) Spouse(id ID) (ID, bool) {
	if partner, ok := r.overrides.Lookup(id); ok {
		return partner, true
	}
	if !Valid(id) {
		return "", false
	}
	partner := WithSpouseSuffix(id)
	if HasSpouseSuffix(id) {
		partner = ID(MainPart(id))
	}
	// The conventional partner was explicitly married to someone else.
	if _, taken := r.overrides.Lookup(partner); taken {
		return "", false
	}
	return partner, true
}

// OtherParent resolves the second parent given one parent identifier.
func (r *Resolver) OtherParent(parent ID) (ID, bool) {
	return r.Spouse(parent)
}

// Parents returns the parent of id followed by the parent's spouse when one
// resolves. The result is empty at the root.
func (r *Resolver) Parents(id ID) []ID {
	parent, ok := r.Parent(id)
	if !ok {
		return nil
	}
	parents := []ID{parent}
	if other, ok := r.OtherParent(parent); ok && other != parent {
		parents = append(parents, other)
	}
	return parents
}

// Relatives bundles every derivable relationship of one identifier.
type Relatives struct {
	ID       ID   `json:"id"`
	Valid    bool `json:"valid"`
	Depth    int  `json:"depth"`
	Parent   ID   `json:"parent,omitempty"`
	Parents  []ID `json:"parents"`
	Spouse   ID   `json:"spouse,omitempty"`
	Children []ID `json:"children"`
	Siblings []ID `json:"siblings"`
}

// Relatives resolves every relationship of id at once.
func (r *Resolver) Relatives(id ID) Relatives {
	rel := Relatives{
		ID:       normalize(id),
		Valid:    Valid(id),
		Depth:    Depth(id),
		Parents:  emptyIfNil(r.Parents(id)),
		Children: emptyIfNil(r.Children(id)),
		Siblings: emptyIfNil(r.Siblings(id)),
	}
	if parent, ok := r.Parent(id); ok {
		rel.Parent = parent
	}
	if spouse, ok := r.Spouse(id); ok {
		rel.Spouse = spouse
	}
	return rel
}

func addMul(base, n, step uint64) (uint64, bool) {
	if step != 0 && n > ^uint64(0)/step {
		return 0, false
	}
	inc := n * step
	if base > ^uint64(0)-inc {
		return 0, false
	}
	return base + inc, true
}

func clampFanOut(n int) int {
	switch {
	case n < 1:
		return 1
	case n > DefaultMaxFanOut:
		return DefaultMaxFanOut
	default:
		return n
	}
}

func emptyIfNil(ids []ID) []ID {
	if ids == nil {
		return []ID{}
	}
	return ids
}
