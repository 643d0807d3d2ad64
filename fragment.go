package urlcanon

import (
	"unicode/utf8"

	"github.com/martin-sucha/urlcanon/urlparse"
)

// CanonicalizeFragment appends "#" plus the fragment to out. The fragment
// is the one component always emitted as UTF-8 regardless of the target
// charset, and the output is guaranteed to be valid UTF-8: broken input
// sequences are replaced with the Unicode replacement character.
//
// Replacement reports failure, but that failure is advisory only. The page
// behind the URL can still load, just perhaps not scroll to the right
// place, so callers must not treat it as fatal to the whole URL.
func CanonicalizeFragment(spec string, fragment urlparse.Component, out *Buffer) (urlparse.Component, bool) {
	if !fragment.Present() {
		return urlparse.Absent(), true
	}
	out.Push('#')
	begin := out.Len()
	ok := true

	text := spec[fragment.Begin:fragment.End()]
	for i := 0; i < len(text); {
		c := text[i]
		if c < 0x80 {
			if c < 0x20 {
				appendEscaped(out, c)
			} else {
				out.Push(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			out.Append("�")
			ok = false
			i++
			continue
		}
		out.Append(text[i : i+size])
		i += size
	}
	return urlparse.MakeRange(begin, out.Len()), ok
}
