// Package filter implements the small boolean/field predicate language a
// client view filters a record stream with: atoms over individual
// RequestEntry fields (status, method, uri, ip, port, time, host, proto,
// header) combined with negation, conjunction, disjunction and exclusive
// or. Parse compiles source text into an Expr tree; Expr.Matches evaluates
// it against one record.
package filter
