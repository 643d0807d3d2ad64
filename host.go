package urlcanon

import (
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/martin-sucha/urlcanon/urlparse"
)

// CanonicalizeHost appends the canonical host to out.
//
// The host text is percent-decoded and ASCII-lowercased first. If the
// result is an IPv4 or IPv6 literal it is serialized in strict canonical
// form (see ip.go). Otherwise the text is treated as a hostname: characters
// outside the host grammar report failure but a best-effort copy is still
// written so callers can display something, and hosts containing non-ASCII
// code points go through IDN conversion, whose output must be pure ASCII.
//
// Empty input is preserved as an empty host, which only file URLs treat as
// meaningful.
func CanonicalizeHost(spec string, host urlparse.Component, out *Buffer) (urlparse.Component, bool) {
	begin := out.Len()
	if !host.Nonempty() {
		return urlparse.Component{Begin: begin, Len: 0}, true
	}

	var stack [64]byte
	decoded := NewBuffer(stack[:])
	charsOK := true
	hasUnicode := false

	i := host.Begin
	for i < host.End() {
		c := spec[i]
		if c == '%' {
			d, valid := decodeEscape(spec, i)
			if !valid {
				decoded.Push('%')
				charsOK = false
				i++
				continue
			}
			c = d
			i += 3
		} else {
			i++
		}
		if c >= 0x80 {
			hasUnicode = true
			decoded.Push(c)
			continue
		}
		c = toLower(c)
		if !isHostChar(c) && !isIPTextChar(c) {
			charsOK = false
		}
		decoded.Push(c)
	}

	text := decoded.String()
	if hasUnicode {
		// Percent-decoding can yield bytes that are not valid UTF-8. The
		// IDN lookup maps such bytes without complaint, which would let
		// distinct hosts collapse to one canonical form, so they must
		// fail before reaching it.
		if !utf8.ValidString(text) {
			charsOK = false
		} else if ascii, err := idnaToASCII(text); err == nil && isASCII(ascii) {
			text = ascii
		} else {
			charsOK = false
		}
	}

	// IP detection runs over the fully normalized text. When the host is
	// recognized as an IP literal, its own verdict replaces any character
	// complaints: '[', ']' and ':' are valid there but nowhere else.
	if isIP, ipOK := canonicalizeIPAddress(text, out); isIP {
		return urlparse.MakeRange(begin, out.Len()), ipOK
	}
	if hasIPTextChars(text) {
		charsOK = false
	}
	out.Append(text)
	return urlparse.MakeRange(begin, out.Len()), charsOK
}

// idnaToASCII is the IDN collaborator: Unicode hostname in, ASCII
// hostname out. The lookup profile case-folds and maps the input the way
// name resolution would.
func idnaToASCII(host string) (string, error) {
	return idna.Lookup.ToASCII(host)
}

// isIPTextChar reports whether c can appear in the text of an IP literal
// but not in a hostname.
func isIPTextChar(c byte) bool {
	return c == '[' || c == ']' || c == ':'
}

func hasIPTextChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if isIPTextChar(s[i]) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
