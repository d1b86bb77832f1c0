package filter

import (
	"time"

	"github.com/s3bk/clog/record"
)

// Context carries evaluation-time state an Expr needs beyond the record
// itself: currently just the reference instant a relative TimeSpec is
// resolved against.
type Context struct {
	Now uint64 // unix seconds
}

// NewContext returns a Context anchored to the current instant.
func NewContext() Context {
	return Context{Now: uint64(time.Now().Unix())} //nolint:gosec
}

// CombinationKind tags how an Expr's operands combine.
type CombinationKind uint8

const (
	CombNot CombinationKind = iota + 1
	CombAnd
	CombOr
	CombXor
)

// FieldKind tags which RequestEntry field an Expr's field atom tests.
type FieldKind uint8

const (
	FieldStatus FieldKind = iota + 1
	FieldMethod
	FieldURI
	FieldIP
	FieldPort
	FieldTime
	FieldHost
	FieldProto
	FieldHeader
)

// Expr is one node of a parsed filter: either a field atom or a
// combination of sub-expressions. Exactly one of the two halves is
// meaningful, selected by IsField.
type Expr struct {
	IsField bool

	Field FieldFilter

	Comb     CombinationKind
	Not      *Expr
	Operands []Expr
}

// FieldFilter is the union of every atom kind a field Expr can hold; only
// the member matching Kind is meaningful.
type FieldFilter struct {
	Kind FieldKind

	Number NumberFilter
	String StringFilter
	IP     IPFilter
	Time   TimeFilter
	Proto  ProtoFilter
	Header HeaderFilter
}

// Matches reports whether e evaluates true against entry under ctx.
func (e Expr) Matches(ctx Context, entry record.RequestEntry) bool {
	if e.IsField {
		return e.Field.matches(ctx, entry)
	}

	switch e.Comb {
	case CombNot:
		return !e.Not.Matches(ctx, entry)
	case CombAnd:
		for _, o := range e.Operands {
			if !o.Matches(ctx, entry) {
				return false
			}
		}

		return true
	case CombOr:
		for _, o := range e.Operands {
			if o.Matches(ctx, entry) {
				return true
			}
		}

		return false
	case CombXor:
		result := false
		for _, o := range e.Operands {
			result = result != o.Matches(ctx, entry)
		}

		return result
	default:
		return false
	}
}

func (f FieldFilter) matches(ctx Context, entry record.RequestEntry) bool {
	switch f.Kind {
	case FieldStatus:
		return f.Number.Matches(uint64(entry.Status))
	case FieldMethod:
		return f.String.Matches(entry.Method)
	case FieldURI:
		return f.String.Matches(entry.URI)
	case FieldIP:
		return f.IP.Matches(entry.IP)
	case FieldPort:
		return f.Number.Matches(uint64(entry.Port))
	case FieldTime:
		return f.Time.Matches(ctx, uint64(entry.Time.Unix())) //nolint:gosec
	case FieldHost:
		return f.String.Matches(entry.Host)
	case FieldProto:
		return f.Proto.Matches(entry.Proto)
	case FieldHeader:
		return f.Header.Matches(entry.Headers)
	default:
		return false
	}
}
