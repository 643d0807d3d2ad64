package urlcanon

import (
	"unicode/utf8"

	"github.com/martin-sucha/urlcanon/urlparse"
)

// CanonicalizeQuery appends "?" plus the canonical query to out. Absent
// input emits nothing, but a present, empty query keeps its "?".
//
// The input is repaired to valid UTF-8 (broken sequences become the
// replacement character), converted through conv into the target charset
// (nil means UTF-8), and escaped with the query escape set. Existing
// percent-escapes pass through untouched. Queries are free-form and must
// never block navigation, so this canonicalizer cannot fail.
func CanonicalizeQuery(spec string, query urlparse.Component, conv CharsetConverter, out *Buffer) urlparse.Component {
	if !query.Present() {
		return urlparse.Absent()
	}
	out.Push('?')
	begin := out.Len()
	text := spec[query.Begin:query.End()]

	if isASCII(text) {
		appendEscapedQuery(text, out)
		return urlparse.MakeRange(begin, out.Len())
	}

	var stack [64]byte
	converted := NewBuffer(stack[:])
	repaired := repairUTF8(text)
	if conv == nil {
		converted.Append(repaired)
	} else {
		conv.Convert(repaired, converted)
	}
	appendEscapedQuery(converted.String(), out)
	return urlparse.MakeRange(begin, out.Len())
}

func appendEscapedQuery(s string, out *Buffer) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; isQueryChar(c) {
			out.Push(c)
		} else {
			appendEscaped(out, c)
		}
	}
}

// repairUTF8 replaces invalid byte sequences with the Unicode replacement
// character. Valid input is returned unchanged without allocating.
func repairUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b []byte
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b = append(b, "�"...)
			i++
			continue
		}
		b = append(b, s[i:i+size]...)
		i += size
	}
	return string(b)
}
