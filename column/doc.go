// Package column implements the struct-of-arrays storage underlying a
// block builder: one independently growing typed Array per schema field,
// so a column's storage for one field never touches another field's
// allocation.
//
// This is a deliberate departure from the source system's single
// unsafe-pointer byte arena shared across all fields of a record (see
// DESIGN.md): Go's slice and GC semantics make per-field typed slices the
// idiomatic shape, and the compiler already gives each Array's element
// type memory safety an arena would need unsafe code to recover.
package column
