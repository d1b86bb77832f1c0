package filter

import "github.com/s3bk/clog/format"

// ProtoFilter matches a specific HTTP protocol. An entry whose protocol
// was never recorded (format.ProtoUnknown) always matches, since absence
// of the field shouldn't read as a mismatch.
type ProtoFilter format.Protocol

// Matches reports whether p satisfies f.
func (f ProtoFilter) Matches(p format.Protocol) bool {
	return p == format.ProtoUnknown || format.Protocol(f) == p
}
