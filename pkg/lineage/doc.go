// Package lineage derives family relationships from the decimal structure of
// person identifiers. No graph is stored: an identifier's generation is the
// number of trailing zeros in its numeric main part, its parent is obtained by
// zeroing the next significant digit, and its children enumerate the digit
// just below its generation.
//
// Identifiers look like "140000" (a person) or "140000.1" (that person's
// spouse by convention). An explicit Overrides table can pair identifiers
// that do not follow the suffix convention.
//
// Nothing in this package returns errors or panics on malformed input. A
// non-numeric identifier simply has no derivable relatives.
package lineage
