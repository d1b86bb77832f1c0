package filter

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// StringMode selects how a StringFilter compares against a field's value.
type StringMode uint8

const (
	StringEquals StringMode = iota + 1
	StringPrefix
	StringSuffix
	StringContains
	StringRegex
	StringSimilar
)

// StringFilter is one string-field test: a literal comparison, a prefix/
// suffix/substring test, a regular expression, or a Levenshtein-distance
// bound.
type StringFilter struct {
	Mode    StringMode
	Text    string
	Regex   *regexp.Regexp // set when Mode == StringRegex
	MaxDist int            // set when Mode == StringSimilar
}

// Matches reports whether s satisfies f.
func (f StringFilter) Matches(s string) bool {
	switch f.Mode {
	case StringEquals:
		return s == f.Text
	case StringPrefix:
		return strings.HasPrefix(s, f.Text)
	case StringSuffix:
		return strings.HasSuffix(s, f.Text)
	case StringContains:
		return strings.Contains(s, f.Text)
	case StringRegex:
		return f.Regex != nil && f.Regex.MatchString(s)
	case StringSimilar:
		return levenshtein.ComputeDistance(s, f.Text) <= f.MaxDist
	default:
		return false
	}
}
