package lineage

import (
	"fmt"
	"strings"
)

// SpouseSuffix marks the spouse of the person named by the main part.
const SpouseSuffix = ".1"

// maxStepExp is the largest n for which 10^n fits in a uint64.
const maxStepExp = 19

// ID is a person identifier in textual form.
type ID string

// String returns the textual identifier.
func (id ID) String() string {
	return string(id)
}

// MainPart strips the spouse suffix marker, if present.
func MainPart(id ID) string {
	s := strings.TrimSpace(string(id))
	return strings.TrimSuffix(s, SpouseSuffix)
}

// HasSpouseSuffix reports whether id carries the spouse suffix marker.
func HasSpouseSuffix(id ID) bool {
	return strings.HasSuffix(strings.TrimSpace(string(id)), SpouseSuffix)
}

// WithSpouseSuffix returns the spouse form of id's main part.
func WithSpouseSuffix(id ID) ID {
	return ID(MainPart(id) + SpouseSuffix)
}

// Valid reports whether id has a non-empty, all-digit main part whose value
// fits in a uint64.
func Valid(id ID) bool {
	_, ok := Value(id)
	return ok
}

// Depth returns the generation depth of id: the count of trailing '0'
// characters of its main part. An all-zero main part has depth equal to its
// length. Empty or non-digit main parts have depth 0.
func Depth(id ID) int {
	main := MainPart(id)
	if !isDigits(main) {
		return 0
	}
	n := 0
	for i := len(main) - 1; i >= 0 && main[i] == '0'; i-- {
		n++
	}
	return n
}

// Step returns 10^n. ok is false when n is negative or the result would
// overflow a uint64.
func Step(n int) (step uint64, ok bool) {
	if n < 0 || n > maxStepExp {
		return 0, false
	}
	step = 1
	for i := 0; i < n; i++ {
		step *= 10
	}
	return step, true
}

// Value parses the main part of id as an unsigned integer.
func Value(id ID) (uint64, bool) {
	main := MainPart(id)
	if !isDigits(main) {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(main); i++ {
		d := uint64(main[i] - '0')
		if v > (^uint64(0)-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// format renders v zero-padded to width digits so derived identifiers keep
// the textual width of the identifier they came from.
func format(v uint64, width int) ID {
	return ID(fmt.Sprintf("%0*d", width, v))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
