package filter

import "net"

// IPFilter tests an address against a bit pattern over the v4-mapped IPv6
// form: a wildcard octet carries a zero mask bit, so it matches any value
// there.
type IPFilter struct {
	Bits [net.IPv6len]byte
	Mask [net.IPv6len]byte
}

// newIPv4Filter builds an IPFilter from four octets, each either a literal
// byte or a wildcard, over the IPv4-in-IPv6 prefix (10 zero bytes, then
// 0xff, 0xff, then the four octets).
func newIPv4Filter(octets [4]ipOctet) IPFilter {
	var f IPFilter

	for i := 0; i < 12; i++ {
		f.Mask[i] = 0xff
	}

	f.Bits[10], f.Bits[11] = 0xff, 0xff

	for i, o := range octets {
		if o.wildcard {
			continue
		}

		f.Bits[12+i] = o.value
		f.Mask[12+i] = 0xff
	}

	return f
}

type ipOctet struct {
	value    byte
	wildcard bool
}

// Matches reports whether ip satisfies f.
func (f IPFilter) Matches(ip net.IP) bool {
	v6 := ip.To16()
	if v6 == nil {
		return false
	}

	for i := range f.Mask {
		if v6[i]&f.Mask[i] != f.Bits[i]&f.Mask[i] {
			return false
		}
	}

	return true
}
