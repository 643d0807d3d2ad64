package urlcanon

import (
	"strings"

	"github.com/martin-sucha/urlcanon/urlparse"
)

// IsRelativeURL classifies ref as relative or absolute against a canonical
// base. Leading whitespace and control characters are stripped first. A
// reference with a scheme prefix is absolute unless the scheme matches the
// base's (case-insensitively) and the base is hierarchical, in which case
// the part after the colon resolves as relative, matching what browsers do
// with "http:page.html" on an http page. Against a file base a
// drive-letter reference like "D:/x" is relative, never a "d" scheme URL.
//
// On success, relative identifies the sub-range of ref to feed into
// ResolveRelativeURL; it is meaningless when isRelative is false. ok is
// false only when the combination makes no sense: an opaque-path base
// never supports relative resolution.
func IsRelativeURL(base string, baseParsed urlparse.Parsed, ref string) (isRelative bool, relative urlparse.Component, ok bool) {
	hierarchical := baseParsed.Shape != urlparse.ShapeOpaque

	start := 0
	for start < len(ref) && ref[start] <= 0x20 {
		start++
	}

	// Against a file base, "D:/x" is a drive-letter reference, not a URL
	// with scheme "d". This must win over scheme extraction.
	if baseParsed.Shape == urlparse.ShapeFile && looksLikeDrive(ref[start:]) {
		return true, urlparse.MakeRange(start, len(ref)), true
	}

	scheme, hasScheme := urlparse.ExtractScheme(ref[start:])
	if !hasScheme {
		if !hierarchical {
			return false, urlparse.Absent(), false
		}
		return true, urlparse.MakeRange(start, len(ref)), true
	}
	if !hierarchical {
		return false, urlparse.Absent(), true
	}
	refScheme := ref[start+scheme.Begin : start+scheme.End()]
	baseScheme := baseParsed.Scheme.Of(base)
	if !strings.EqualFold(refScheme, baseScheme) {
		return false, urlparse.Absent(), true
	}
	// Same scheme: trim the redundant prefix and resolve the rest.
	return true, urlparse.MakeRange(start+scheme.End()+1, len(ref)), true
}

// ResolveRelativeURL merges a reference known to be relative (classified
// by IsRelativeURL) with a canonical base, appending the canonical result
// to out.
//
// The base must have a non-empty path and, unless it is a file URL, a
// host. When it does not, resolution is impossible: the base is written
// unchanged as a safe fallback and failure is reported.
func ResolveRelativeURL(base string, baseParsed urlparse.Parsed, ref string, relative urlparse.Component, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	file := baseParsed.Shape == urlparse.ShapeFile
	resolvable := baseParsed.Path.Nonempty() && (file || baseParsed.Host.Nonempty())
	if !resolvable {
		return copyBase(base, baseParsed, out), false
	}

	rs := relative.Of(ref)
	if rs == "" {
		return copyBase(base, baseParsed, out), true
	}

	src := singleSource(base)
	p := baseParsed

	switch {
	case rs[0] == '#':
		src.fragment = rs
		p.Fragment = urlparse.MakeRange(1, len(rs))

	case rs[0] == '?':
		query, frag := splitQueryFragment(rs, 1)
		src.query = rs
		p.Query = query
		src.fragment = rs
		p.Fragment = frag

	case len(rs) >= 2 && isSlashByte(rs[0]) && isSlashByte(rs[1]):
		// Authority-relative: keep only the base's scheme.
		full := base[:baseParsed.Scheme.End()] + ":" + rs
		var parsed urlparse.Parsed
		if file {
			parsed = urlparse.SplitFile(full)
		} else {
			parsed = urlparse.SplitStandard(full)
		}
		return Canonicalize(full, parsed, conv, out)

	case isSlashByte(rs[0]):
		path, query, frag := splitRelativePath(rs)
		src.path = rs
		p.Path = path
		src.query = rs
		p.Query = query
		src.fragment = rs
		p.Fragment = frag

	default:
		path, query, frag := splitRelativePath(rs)
		relPath := rs[:path.End()]
		var merged string
		if file && looksLikeDrive(relPath) {
			// A drive-letter reference replaces the whole path rather
			// than merging into the base directory.
			merged = relPath
		} else {
			basePath := baseParsed.Path.Of(base)
			dirEnd := strings.LastIndexByte(basePath, '/') + 1
			merged = basePath[:dirEnd] + relPath
		}
		src.path = merged
		p.Path = urlparse.MakeRange(0, len(merged))
		src.query = rs
		p.Query = query
		src.fragment = rs
		p.Fragment = frag
	}

	if file {
		return canonicalizeFile(src, p, conv, out)
	}
	return canonicalizeStandard(src, p, conv, out)
}

// Resolve classifies ref against base and produces the canonical result:
// relative references are merged with the base, absolute ones are
// canonicalized on their own. When the combination makes no sense the base
// is written unchanged and failure reported.
func Resolve(base string, baseParsed urlparse.Parsed, ref string, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	isRelative, relative, ok := IsRelativeURL(base, baseParsed, ref)
	if !ok {
		return copyBase(base, baseParsed, out), false
	}
	if isRelative {
		return ResolveRelativeURL(base, baseParsed, ref, relative, conv, out)
	}
	trimmed := strings.TrimLeft(ref, "\x00\x01\x02\x03\x04\x05\x06\x07\x08\t\n\v\f\r\x0e\x0f\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1a\x1b\x1c\x1d\x1e\x1f ")
	return Canonicalize(trimmed, urlparse.Split(trimmed), conv, out)
}

// copyBase writes the already-canonical base verbatim and returns its
// parse shifted to the output's offsets.
func copyBase(base string, baseParsed urlparse.Parsed, out *Buffer) urlparse.Parsed {
	delta := out.Len()
	out.Append(base)
	shift := func(c urlparse.Component) urlparse.Component {
		if !c.Present() {
			return c
		}
		return urlparse.Component{Begin: c.Begin + delta, Len: c.Len}
	}
	baseParsed.Scheme = shift(baseParsed.Scheme)
	baseParsed.Username = shift(baseParsed.Username)
	baseParsed.Password = shift(baseParsed.Password)
	baseParsed.Host = shift(baseParsed.Host)
	baseParsed.Port = shift(baseParsed.Port)
	baseParsed.Path = shift(baseParsed.Path)
	baseParsed.Query = shift(baseParsed.Query)
	baseParsed.Fragment = shift(baseParsed.Fragment)
	return baseParsed
}

// splitRelativePath splits a reference into path, query and fragment
// components over s, with the path starting at offset 0.
func splitRelativePath(s string) (path, query, frag urlparse.Component) {
	query = urlparse.Absent()
	frag = urlparse.Absent()
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '?':
			path = urlparse.MakeRange(0, i)
			query, frag = splitQueryFragment(s, i+1)
			return path, query, frag
		case '#':
			path = urlparse.MakeRange(0, i)
			frag = urlparse.MakeRange(i+1, len(s))
			return path, query, frag
		}
	}
	return urlparse.MakeRange(0, len(s)), query, frag
}

// splitQueryFragment splits s from offset i into the query component and
// an optional fragment after '#'.
func splitQueryFragment(s string, i int) (query, frag urlparse.Component) {
	for j := i; j < len(s); j++ {
		if s[j] == '#' {
			return urlparse.MakeRange(i, j), urlparse.MakeRange(j+1, len(s))
		}
	}
	return urlparse.MakeRange(i, len(s)), urlparse.Absent()
}

// looksLikeDrive reports whether s begins with a drive letter plus ':' or
// '|' separator.
func looksLikeDrive(s string) bool {
	if len(s) < 2 || !isAlpha(s[0]) {
		return false
	}
	if s[1] != ':' && s[1] != '|' {
		return false
	}
	return len(s) == 2 || isSlashByte(s[2])
}
