package block

// Rebuild reconstructs a mutable Builder from a decoded Block so a resumed
// process can keep appending to what was, on disk, a sealed tail. This
// re-interns every string and re-adds every record rather than copying
// columns directly, since a Builder's codecs (and their dictionaries) are
// not addressable from a Block's read-only decoded form.
func Rebuild(blk *Block) *Builder {
	b := NewBuilder(blk.Header.Start, blk.Len())

	for i := 0; i < blk.Len(); i++ {
		e, ok := blk.Get(i)
		if !ok {
			continue
		}

		b.Add(e)
	}

	return b
}
