package ipfilter

import "net"

// Admit reports whether callerAddress is allowed by the whitelist ranges.
// An empty range set means no restriction is configured and every address is
// admitted. Entries may be single IP addresses or CIDR blocks. A caller
// address that does not parse, or a malformed stored entry, fails closed.
func Admit(callerAddress string, ranges []string) bool {
	if len(ranges) == 0 {
		return true
	}

	ip := net.ParseIP(callerAddress)
	if ip == nil {
		return false
	}

	for _, entry := range ranges {
		cidr := parseEntry(entry)
		if cidr == nil {
			// Stored ranges are validated at update time; anything
			// malformed that slips through must not admit.
			return false
		}
		if cidr.Contains(ip) {
			return true
		}
	}

	return false
}

// Valid reports whether entry is a syntactically valid IP address or CIDR
// block. Used by the registry when whitelist ranges are created or updated.
func Valid(entry string) bool {
	return parseEntry(entry) != nil
}

func parseEntry(entry string) *net.IPNet {
	if _, cidr, err := net.ParseCIDR(entry); err == nil {
		return cidr
	}
	ip := net.ParseIP(entry)
	if ip == nil {
		return nil
	}
	return singleIPToCIDR(ip)
}

// singleIPToCIDR converts a single IP address to a /32 or /128 CIDR.
func singleIPToCIDR(ip net.IP) *net.IPNet {
	bits := 32
	if ip.To4() == nil {
		bits = 128
	}
	return &net.IPNet{
		IP:   ip,
		Mask: net.CIDRMask(bits, bits),
	}
}
