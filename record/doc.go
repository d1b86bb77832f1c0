// Package record defines RequestEntry, the public input to a block: one
// HTTP request observation as the embedding application reports it, before
// it is split into per-field handles by the codec layer.
package record
