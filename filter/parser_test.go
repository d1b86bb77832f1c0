package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SinglePort(t *testing.T) {
	e, err := Parse("port 80")
	require.NoError(t, err)
	assert.Equal(t, Expr{IsField: true, Field: FieldFilter{
		Kind:   FieldPort,
		Number: NumberFilter{Value: 80},
	}}, e)
}

func TestParse_FlatAndChain(t *testing.T) {
	e, err := Parse("port 80 & uri /api & port 100")
	require.NoError(t, err)
	require.False(t, e.IsField)
	require.Equal(t, CombAnd, e.Comb)
	require.Len(t, e.Operands, 3)

	assert.Equal(t, FieldFilter{Kind: FieldPort, Number: NumberFilter{Value: 80}}, e.Operands[0].Field)
	assert.Equal(t, FieldFilter{Kind: FieldURI, String: StringFilter{Mode: StringEquals, Text: "/api"}}, e.Operands[1].Field)
	assert.Equal(t, FieldFilter{Kind: FieldPort, Number: NumberFilter{Value: 100}}, e.Operands[2].Field)
}

func TestParse_TrailingStarIsPrefix(t *testing.T) {
	e, err := Parse("uri /api/ *")
	require.NoError(t, err)
	assert.Equal(t, StringFilter{Mode: StringPrefix, Text: "/api/"}, e.Field.String)
}

func TestParse_QuotedTrailingStarIsPrefix(t *testing.T) {
	e, err := Parse(`uri "/api/"*`)
	require.NoError(t, err)
	assert.Equal(t, StringFilter{Mode: StringPrefix, Text: "/api/"}, e.Field.String)
}

func TestParse_LeadingStarIsSuffix(t *testing.T) {
	e, err := Parse(`uri *"/api/"`)
	require.NoError(t, err)
	assert.Equal(t, StringFilter{Mode: StringSuffix, Text: "/api/"}, e.Field.String)
}

func TestParse_BothStarsIsContains(t *testing.T) {
	e, err := Parse(`uri * "/api/" *`)
	require.NoError(t, err)
	assert.Equal(t, StringFilter{Mode: StringContains, Text: "/api/"}, e.Field.String)
}

func TestParse_RangeAndQuotedPrefixCombination(t *testing.T) {
	e, err := Parse(`port 80 .. 100 & uri "/api/"*`)
	require.NoError(t, err)
	require.Equal(t, CombAnd, e.Comb)
	require.Len(t, e.Operands, 2)

	assert.Equal(t, FieldFilter{Kind: FieldPort, Number: NumberFilter{Value: 80, High: 100, Range: true}}, e.Operands[0].Field)
	assert.Equal(t, FieldFilter{Kind: FieldURI, String: StringFilter{Mode: StringPrefix, Text: "/api/"}}, e.Operands[1].Field)
}

func TestParse_Regex(t *testing.T) {
	e, err := Parse(`uri r"[0-1a-e]+"`)
	require.NoError(t, err)
	require.Equal(t, StringRegex, e.Field.String.Mode)
	assert.Equal(t, "[0-1a-e]+", e.Field.String.Regex.String())
}

func TestParse_Similar(t *testing.T) {
	e, err := Parse(`host ~2 "example.com"`)
	require.NoError(t, err)
	assert.Equal(t, StringFilter{Mode: StringSimilar, Text: "example.com", MaxDist: 2}, e.Field.String)
}

func TestParse_Not(t *testing.T) {
	e, err := Parse("!status 404")
	require.NoError(t, err)
	require.Equal(t, CombNot, e.Comb)
	assert.Equal(t, FieldFilter{Kind: FieldStatus, Number: NumberFilter{Value: 404}}, e.Not.Field)
}

func TestParse_OrXorPrecedence(t *testing.T) {
	e, err := Parse("status 200 | status 201 ^ status 202")
	require.NoError(t, err)
	require.Equal(t, CombOr, e.Comb)
	require.Len(t, e.Operands, 2)
	assert.Equal(t, FieldStatus, e.Operands[0].Field.Kind)
	assert.Equal(t, CombXor, e.Operands[1].Comb)
}

func TestParse_Parens(t *testing.T) {
	e, err := Parse("(status 200 | status 201) & method GET")
	require.NoError(t, err)
	require.Equal(t, CombAnd, e.Comb)
	require.Len(t, e.Operands, 2)
	assert.Equal(t, CombOr, e.Operands[0].Comb)
}

func TestParse_IPWildcard(t *testing.T) {
	e, err := Parse("ip 10.0.*.1")
	require.NoError(t, err)

	want := newIPv4Filter([4]ipOctet{
		{value: 10},
		{value: 0},
		{wildcard: true},
		{value: 1},
	})
	assert.Equal(t, want, e.Field.IP)
}

func TestParse_Proto(t *testing.T) {
	e, err := Parse("proto https")
	require.NoError(t, err)
	assert.Equal(t, FieldProto, e.Field.Kind)
}

func TestParse_Header(t *testing.T) {
	e, err := Parse(`header Content-Type=application/json`)
	require.NoError(t, err)
	assert.Equal(t, "content-type", e.Field.Header.Header)
	assert.Equal(t, StringFilter{Mode: StringEquals, Text: "application/json"}, e.Field.Header.Filter)
}

func TestParse_TimeAbsoluteRange(t *testing.T) {
	e, err := Parse("time 1000..2000")
	require.NoError(t, err)
	require.NotNil(t, e.Field.Time.Start)
	require.NotNil(t, e.Field.Time.End)
	assert.Equal(t, uint64(1000), e.Field.Time.Start.At)
	assert.Equal(t, uint64(2000), e.Field.Time.End.At)
}

func TestParse_TimeRelativeOpenEnd(t *testing.T) {
	e, err := Parse("time now-1h30m..")
	require.NoError(t, err)
	require.NotNil(t, e.Field.Time.Start)
	assert.Nil(t, e.Field.Time.End)
	assert.Equal(t, int64(-5400), e.Field.Time.Start.Offset)
}

func TestParse_TimeSinglePoint(t *testing.T) {
	e, err := Parse("time 1000")
	require.NoError(t, err)
	require.NotNil(t, e.Field.Time.Start)
	require.NotNil(t, e.Field.Time.End)
	assert.Equal(t, uint64(1000), e.Field.Time.Start.At)
	assert.Equal(t, uint64(1001), e.Field.Time.End.At)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse("bogus 1")
	assert.Error(t, err)
}

func TestParse_TrailingGarbage(t *testing.T) {
	_, err := Parse("status 200 )")
	assert.Error(t, err)
}
