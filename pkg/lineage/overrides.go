package lineage

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPair is returned when an override pair is malformed.
var ErrInvalidPair = errors.New("lineage: invalid spouse pair")

// Overrides is a symmetric spouse table that takes precedence over the
// suffix convention. Pairing a with b always pairs b with a, and re-pairing
// an identifier unlinks its previous partner, so lookups stay an involution.
//
// Overrides is safe for concurrent use.
type Overrides struct {
	mu    sync.RWMutex
	pairs map[ID]ID
}

// NewOverrides returns an empty table.
func NewOverrides() *Overrides {
	return &Overrides{pairs: make(map[ID]ID)}
}

// Pair links a and b as spouses.
func (o *Overrides) Pair(a, b ID) error {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" || a == b {
		return fmt.Errorf("%w: %q <-> %q", ErrInvalidPair, a, b)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unlinkLocked(a)
	o.unlinkLocked(b)
	o.pairs[a] = b
	o.pairs[b] = a
	return nil
}

// Unpair removes any override for id and its partner.
func (o *Overrides) Unpair(id ID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unlinkLocked(normalize(id))
}

// Lookup returns the explicit partner of id, if any.
func (o *Overrides) Lookup(id ID) (ID, bool) {
	if o == nil {
		return "", false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	partner, ok := o.pairs[normalize(id)]
	return partner, ok
}

// Len returns the number of identifiers that carry an override.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.pairs)
}

func (o *Overrides) unlinkLocked(id ID) {
	if partner, ok := o.pairs[id]; ok {
		delete(o.pairs, partner)
		delete(o.pairs, id)
	}
}

type overridesFile struct {
	Pairs [][]string `yaml:"pairs"`
}

// LoadOverrides reads a YAML document of the form
//
//	pairs:
//	  - ["140000", "530000.1"]
//
// into a new table. Later pairs win over earlier ones that share an id.
func LoadOverrides(r io.Reader) (*Overrides, error) {
	var doc overridesFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode spouse overrides: %w", err)
	}
	o := NewOverrides()
	for i, pair := range doc.Pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %d has %d ids", ErrInvalidPair, i, len(pair))
		}
		if err := o.Pair(ID(pair[0]), ID(pair[1])); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return o, nil
}

func normalize(id ID) ID {
	return ID(strings.TrimSpace(string(id)))
}
