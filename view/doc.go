// Package view implements windowed and filtered reading views over a
// client.Mirror: Scroll is an absolute-position window that reuses
// previously rendered values as it shifts, and Filter is a predicate-
// scoped window that re-evaluates its whole visible set on every render.
//
// Both are generic over the value a caller wants to render each record
// into, in place of the callback-into-a-JS-function pattern a browser
// binding would use for the same job.
package view
