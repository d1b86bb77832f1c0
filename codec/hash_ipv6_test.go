package codec

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashIpv6_RoundTrip(t *testing.T) {
	h := NewHashIpv6()

	ips := []net.IP{
		net.ParseIP("2001:db8::1"),
		net.ParseIP("2001:db8::2"),
		net.ParseIP("2001:db8::1"),
		net.ParseIP("::ffff:192.0.2.1"),
	}

	prefixIdx := make([]uint32, len(ips))
	suffix := make([]uint32, len(ips))
	for i, ip := range ips {
		prefixIdx[i], suffix[i] = h.Add(ip)
	}

	require.Equal(t, prefixIdx[0], prefixIdx[2])
	require.NotEqual(t, prefixIdx[0], prefixIdx[3])

	payload, size := h.Encode(prefixIdx, suffix)
	require.Equal(t, uint32(2), size.PrefixCount)

	decoded, decPrefixIdx, decSuffix, err := DecodeHashIpv6(payload, len(ips), size)
	require.NoError(t, err)

	for i, want := range ips {
		got, ok := decoded.Get(decPrefixIdx[i], decSuffix[i])
		require.True(t, ok)
		require.True(t, want.Equal(got), "want %s got %s", want, got)
	}
}

func TestHashIpv6_OutOfRangePrefix(t *testing.T) {
	h := NewHashIpv6()
	_, ok := h.Get(5, 0)
	require.False(t, ok)
}
