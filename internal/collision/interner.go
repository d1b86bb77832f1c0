// Package collision provides the symbol table backing clog's string
// interning columns (HashStrings, HashStringsOpt). Symbols are assigned by
// xxHash64 of the string rather than by a full string-keyed map, so two
// distinct strings landing on the same 64-bit hash must be detected and
// handled: the interner falls back to a linear scan of the colliding
// bucket instead of trusting the hash alone.
package collision

// Interner assigns stable integer symbols to strings, keyed by the
// string's xxHash64 value. It keeps the insertion-ordered symbol table
// needed to write a column's dictionary page, and tracks whether any
// two distinct strings it has seen share a hash.
type Interner struct {
	byHash       map[uint64][]int32 // hash -> symbol indices sharing that hash
	strings      []string           // symbol index -> string, insertion order
	hasCollision bool
}

// NewInterner creates an empty symbol table.
func NewInterner() *Interner {
	return &Interner{
		byHash:  make(map[uint64][]int32),
		strings: make([]string, 0),
	}
}

// Intern returns the symbol for s, assigning a new one if s has not been
// seen before. hash must be the caller's xxHash64(s); Intern never hashes
// s itself so the caller can reuse a hash it already computed.
func (n *Interner) Intern(s string, hash uint64) int32 {
	for _, sym := range n.byHash[hash] {
		if n.strings[sym] == s {
			return sym
		}
		n.hasCollision = true
	}

	sym := int32(len(n.strings))
	n.strings = append(n.strings, s)
	n.byHash[hash] = append(n.byHash[hash], sym)

	return sym
}

// Lookup returns the string for a previously interned symbol.
func (n *Interner) Lookup(sym int32) (string, bool) {
	if sym < 0 || int(sym) >= len(n.strings) {
		return "", false
	}

	return n.strings[sym], true
}

// HasCollision reports whether two distinct strings interned so far share
// an xxHash64 value.
func (n *Interner) HasCollision() bool {
	return n.hasCollision
}

// Strings returns the symbol table in insertion order, i.e. symbol i is
// Strings()[i]. The returned slice must not be mutated.
func (n *Interner) Strings() []string {
	return n.strings
}

// Count returns the number of distinct strings interned.
func (n *Interner) Count() int {
	return len(n.strings)
}

// Reset clears the symbol table for reuse when building the next block.
func (n *Interner) Reset() {
	for k := range n.byHash {
		delete(n.byHash, k)
	}
	n.strings = n.strings[:0]
	n.hasCollision = false
}
