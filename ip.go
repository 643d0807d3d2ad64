package urlcanon

import (
	"net/netip"
	"strconv"
	"strings"
)

// Outcome of parsing one potential IPv4 address or group.
const (
	ipNotAnIP = iota
	ipOK
	ipBroken
)

// canonicalizeIPAddress tries to interpret host as an IP address literal.
// If it is one, the canonical serialization is appended to out and isIP is
// true; ok then reports whether the literal was well formed. Malformed
// literals (an IPv4 group over its bit budget, a bad bracketed IPv6) are
// still IPs for classification purposes: they get a best-effort copy and
// ok false, so a broken literal can never fall back to being treated as a
// resolvable hostname.
//
// If host is not an IP at all, nothing is written and the caller proceeds
// with hostname rules. The input must already be percent-decoded and
// lowercased.
func canonicalizeIPAddress(host string, out *Buffer) (isIP, ok bool) {
	if strings.HasPrefix(host, "[") {
		return true, canonicalizeIPv6(host, out)
	}
	addr, status := parseIPv4(host)
	switch status {
	case ipOK:
		for i, b := range addr {
			if i > 0 {
				out.Push('.')
			}
			out.Append(strconv.Itoa(int(b)))
		}
		return true, true
	case ipBroken:
		appendBestEffortHost(host, out)
		return true, false
	default:
		return false, false
	}
}

// canonicalizeIPv6 serializes a bracketed IPv6 literal in RFC 5952 form:
// lowercase hex groups with the longest run of zero groups collapsed to
// "::", leftmost run winning ties.
func canonicalizeIPv6(host string, out *Buffer) bool {
	if !strings.HasSuffix(host, "]") || len(host) < 2 {
		appendBestEffortHost(host, out)
		return false
	}
	inner := host[1 : len(host)-1]
	addr, err := netip.ParseAddr(inner)
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		appendBestEffortHost(host, out)
		return false
	}
	out.Push('[')
	out.Append(addr.String())
	out.Push(']')
	return true
}

// parseIPv4 parses host with legacy inet_aton semantics: one to four
// groups separated by dots, each decimal, octal ("0"-prefixed) or hex
// ("0x"-prefixed), the last group absorbing all remaining bits. One
// trailing dot is tolerated. A group over its remaining bit budget makes
// the address broken rather than a hostname.
func parseIPv4(host string) (addr [4]byte, status int) {
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return addr, ipNotAnIP
	}
	groups := strings.Split(host, ".")
	if len(groups) > 4 {
		return addr, ipNotAnIP
	}

	values := make([]uint64, len(groups))
	broken := false
	for i, g := range groups {
		v, st := parseIPv4Group(g)
		switch st {
		case ipNotAnIP:
			return addr, ipNotAnIP
		case ipBroken:
			broken = true
		}
		values[i] = v
	}
	if broken {
		return addr, ipBroken
	}

	n := len(values)
	for i := 0; i < n-1; i++ {
		if values[i] > 255 {
			return addr, ipBroken
		}
		addr[i] = byte(values[i])
	}
	// The last group fills the remaining 5-n bytes.
	last := values[n-1]
	remaining := 5 - n
	if remaining < 4 && last>>(8*remaining) != 0 {
		return addr, ipBroken
	}
	for i := 0; i < remaining; i++ {
		addr[3-i] = byte(last >> (8 * i))
	}
	return addr, ipOK
}

// parseIPv4Group parses a single group. ipNotAnIP means the text is not
// numeric at all, so the whole host is a name, not an address. ipBroken
// means numeric-looking but invalid, like the octal "08" or a value past
// 32 bits.
func parseIPv4Group(s string) (uint64, int) {
	if s == "" {
		return 0, ipNotAnIP
	}
	base := uint64(10)
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"):
		base = 16
		digits = s[2:]
		if digits == "" {
			return 0, ipOK // "0x" alone is zero, per inet_aton
		}
	case len(s) > 1 && s[0] == '0':
		base = 8
		digits = s[1:]
	}

	var value uint64
	overflow := false
	for i := 0; i < len(digits); i++ {
		d, valid := hexDigitValue(digits[i])
		if !valid || uint64(d) >= base {
			if base == 8 && isDigit(digits[i]) {
				// "08" looks numeric but is not valid octal.
				return 0, ipBroken
			}
			return 0, ipNotAnIP
		}
		value = value*base + uint64(d)
		if value > 0xFFFFFFFF {
			value = 0xFFFFFFFF
			overflow = true
		}
	}
	if overflow {
		return value, ipBroken
	}
	return value, ipOK
}

// appendBestEffortHost copies a broken literal with only minimal escaping
// so the failed URL remains displayable without becoming a different valid
// one.
func appendBestEffortHost(host string, out *Buffer) {
	for i := 0; i < len(host); i++ {
		c := host[i]
		if c <= 0x20 || c >= 0x7f {
			appendEscaped(out, c)
		} else {
			out.Push(c)
		}
	}
}
