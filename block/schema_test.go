package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActiveFields_CurrentVersionExcludesUAAndReferer(t *testing.T) {
	fields := activeFields(4)
	for _, f := range fields {
		require.NotEqual(t, fieldUA, f)
		require.NotEqual(t, fieldReferer, f)
	}
	require.Contains(t, fields, fieldHeaders)
	require.Contains(t, fields, fieldHost)
	require.Contains(t, fields, fieldProto)
}

func TestActiveFields_Version1OnlyCoreFields(t *testing.T) {
	fields := activeFields(1)
	require.Contains(t, fields, fieldUA)
	require.Contains(t, fields, fieldReferer)
	require.NotContains(t, fields, fieldBody)
	require.NotContains(t, fields, fieldHeaders)
	require.NotContains(t, fields, fieldHost)
	require.NotContains(t, fields, fieldProto)
}

func TestActiveFields_DeclaredOrderPreserved(t *testing.T) {
	fields := activeFields(4)
	require.Equal(t, []fieldID{
		fieldStatus, fieldMethod, fieldURI, fieldIP, fieldPort, fieldTime,
		fieldBody, fieldHeaders, fieldHost, fieldProto,
	}, fields)
}
