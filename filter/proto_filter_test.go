package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s3bk/clog/format"
)

func TestProtoFilter_MatchesExactOrUnknown(t *testing.T) {
	f := ProtoFilter(format.ProtoHTTPS)

	assert.True(t, f.Matches(format.ProtoHTTPS))
	assert.False(t, f.Matches(format.ProtoHTTP))
	assert.True(t, f.Matches(format.ProtoUnknown))
}
