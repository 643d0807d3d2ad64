package urlcanon

import "github.com/martin-sucha/urlcanon/urlparse"

// CanonicalizeScheme lowercases the scheme and appends it plus the
// trailing colon to out. The returned component spans the scheme text,
// excluding the colon.
//
// Canonical URLs always have a scheme, so an absent or empty input still
// emits the bare colon; that case and any character outside the scheme
// grammar report failure. Callers must stop processing the URL on failure.
func CanonicalizeScheme(spec string, scheme urlparse.Component, out *Buffer) (urlparse.Component, bool) {
	begin := out.Len()
	if !scheme.Nonempty() {
		out.Push(':')
		return urlparse.Component{Begin: begin, Len: 0}, false
	}

	ok := true
	for i := scheme.Begin; i < scheme.End(); i++ {
		c := toLower(spec[i])
		valid := isAlpha(c) || (i > scheme.Begin && (isDigit(c) || c == '+' || c == '-' || c == '.'))
		if valid {
			out.Push(c)
		} else {
			// Keep the character visible in escaped form so the broken
			// scheme cannot be mistaken for a valid one.
			appendEscaped(out, spec[i])
			ok = false
		}
	}
	comp := urlparse.MakeRange(begin, out.Len())
	out.Push(':')
	return comp, ok
}

// DefaultPortForScheme returns the registered default port for the given
// canonical (lowercase) scheme, or -1 if the scheme has none. A default
// port is elided from canonical output.
func DefaultPortForScheme(scheme string) int {
	switch scheme {
	case "http", "ws":
		return 80
	case "https", "wss":
		return 443
	case "ftp":
		return 21
	case "gopher":
		return 70
	default:
		return -1
	}
}
