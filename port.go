package urlcanon

import (
	"strconv"

	"github.com/martin-sucha/urlcanon/urlparse"
)

// CanonicalizePort appends the canonical ":port" to out. Ports are decimal
// only; octal or hex spellings are rejected. A port equal to
// defaultPort is omitted entirely, which makes "http://host:80/" and
// "http://host/" canonicalize identically; pass -1 to disable elision.
// Absent or empty input emits nothing.
//
// On a malformed or out-of-range port the raw text is still emitted after
// the colon so the broken URL stays recognizable, and failure is reported.
func CanonicalizePort(spec string, port urlparse.Component, defaultPort int, out *Buffer) (urlparse.Component, bool) {
	if !port.Nonempty() {
		return urlparse.Absent(), true
	}

	value := 0
	for i := port.Begin; i < port.End(); i++ {
		c := spec[i]
		if !isDigit(c) {
			return appendBrokenPort(spec, port, out), false
		}
		value = value*10 + int(c-'0')
		if value > 65535 {
			return appendBrokenPort(spec, port, out), false
		}
	}

	if value == defaultPort {
		return urlparse.Absent(), true
	}
	out.Push(':')
	begin := out.Len()
	out.Append(strconv.Itoa(value))
	return urlparse.MakeRange(begin, out.Len()), true
}

// appendBrokenPort writes the port text escaped, preserving a visibly
// broken but harmless rendition of the invalid input.
func appendBrokenPort(spec string, port urlparse.Component, out *Buffer) urlparse.Component {
	out.Push(':')
	begin := out.Len()
	for i := port.Begin; i < port.End(); i++ {
		c := spec[i]
		if isDigit(c) || isAlpha(c) {
			out.Push(c)
		} else {
			appendEscaped(out, c)
		}
	}
	return urlparse.MakeRange(begin, out.Len())
}
