package filter

import (
	"strings"

	"github.com/s3bk/clog/record"
)

// HeaderFilter matches a named request header against a StringFilter.
// Header names compare case-insensitively, since HTTP header names are
// case-insensitive.
type HeaderFilter struct {
	Header string
	Filter StringFilter
}

// Matches reports whether any header in headers named f.Header satisfies
// f.Filter.
func (f HeaderFilter) Matches(headers []record.HeaderPair) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Key, f.Header) && f.Filter.Matches(h.Value) {
			return true
		}
	}

	return false
}
