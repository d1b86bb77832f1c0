// Package block implements the versioned, self-describing on-disk block
// format: a Builder accumulates records into per-field struct-of-arrays
// columns, Encode seals them into one block payload in declared field
// order, and Decode reads a payload back, gating each field against the
// block header's schema version.
package block
