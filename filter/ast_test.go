package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s3bk/clog/record"
)

func TestExpr_MatchesAndOrXorNot(t *testing.T) {
	ctx := Context{Now: 1000}
	entry := record.RequestEntry{Status: 200, Method: "GET"}

	statusIs := func(n uint64) Expr {
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldStatus, Number: NumberFilter{Value: n}}}
	}

	and := Expr{Comb: CombAnd, Operands: []Expr{statusIs(200), statusIs(200)}}
	assert.True(t, and.Matches(ctx, entry))

	andFalse := Expr{Comb: CombAnd, Operands: []Expr{statusIs(200), statusIs(404)}}
	assert.False(t, andFalse.Matches(ctx, entry))

	or := Expr{Comb: CombOr, Operands: []Expr{statusIs(404), statusIs(200)}}
	assert.True(t, or.Matches(ctx, entry))

	xor := Expr{Comb: CombXor, Operands: []Expr{statusIs(200), statusIs(200)}}
	assert.False(t, xor.Matches(ctx, entry))

	not := Expr{Comb: CombNot, Not: ptr(statusIs(404))}
	assert.True(t, not.Matches(ctx, entry))
}

func ptr(e Expr) *Expr { return &e }
