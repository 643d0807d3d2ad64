package urlcanon

const upperHex = "0123456789ABCDEF"

// isAlpha reports whether c is an ASCII letter.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isUnreserved reports whether c is an RFC 3986 unreserved character, the
// only class that is always safe to leave unescaped in any component.
func isUnreserved(c byte) bool {
	switch c {
	case '-', '.', '_', '~':
		return true
	default:
		return isAlpha(c) || isDigit(c)
	}
}

// hexDigitValue returns the value of the hex digit c.
func hexDigitValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// decodeEscape decodes a percent-escape starting at index i in s.
// It returns false if no valid %XX sequence starts there.
func decodeEscape(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, okHi := hexDigitValue(s[i+1])
	lo, okLo := hexDigitValue(s[i+2])
	if !okHi || !okLo {
		return 0, false
	}
	return hi<<4 | lo, true
}

// appendEscaped writes c as an uppercase %XX escape.
func appendEscaped(out *Buffer, c byte) {
	out.Push('%')
	out.Push(upperHex[c>>4])
	out.Push(upperHex[c&0x0f])
}

// toLower returns the lowercase form of an ASCII letter, other bytes
// unchanged.
func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// isPathChar reports whether c may appear literally in a canonical path.
// Sub-delims, ':', '@', '/', '[' and ']' stay literal per RFC 3986 §3.3;
// '?' and '#' would terminate the path early and everything outside
// printable ASCII gets escaped.
func isPathChar(c byte) bool {
	if isUnreserved(c) {
		return true
	}
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=',
		':', '@', '/', '[', ']':
		return true
	default:
		return false
	}
}

// isQueryChar reports whether c may appear literally in a canonical query.
// The query set keeps all printable ASCII except the characters that
// HTML-embedded URLs cannot carry unescaped.
func isQueryChar(c byte) bool {
	if c <= 0x20 || c >= 0x7f {
		return false
	}
	switch c {
	case '"', '#', '<', '>':
		return false
	default:
		return true
	}
}

// isHostChar reports whether c is permitted in a canonical hostname.
func isHostChar(c byte) bool {
	if c >= 'a' && c <= 'z' {
		return true
	}
	return isDigit(c) || c == '-' || c == '.' || c == '_'
}
