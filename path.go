package urlcanon

import "github.com/martin-sucha/urlcanon/urlparse"

// CanonicalizePath appends the canonical path to out. Canonical paths
// always begin with '/'; one is prepended when the input is empty, absent
// or does not start with a slash. Percent-escapes are decoded and
// re-encoded against the path escape set (only unreserved bytes end up
// unescaped, everything else is re-emitted as uppercase %XX), backslashes
// become slashes, and "." and ".." segments are resolved, with ".."
// silently stopping at the root.
func CanonicalizePath(spec string, path urlparse.Component, out *Buffer) (urlparse.Component, bool) {
	begin := out.Len()
	if !path.Nonempty() {
		out.Push('/')
		return urlparse.MakeRange(begin, out.Len()), true
	}
	if !isSlashByte(spec[path.Begin]) {
		out.Push('/')
	}
	ok := appendPartialPath(spec, path.Begin, path.End(), begin, out)
	return urlparse.MakeRange(begin, out.Len()), ok
}

// appendPartialPath canonicalizes spec[i:end) into out. pathBegin is the
// offset in out where the path's leading '/' lives (or will live); dot
// segments never back out past it.
func appendPartialPath(spec string, i, end, pathBegin int, out *Buffer) bool {
	ok := true
	for i < end {
		c := spec[i]
		switch {
		case isSlashByte(c):
			out.Push('/')
			i++
		case atSegmentStart(out, pathBegin) && isDotAt(spec, i, end):
			i = consumeDotSegment(spec, i, end, pathBegin, out)
		case c == '%':
			d, valid := decodeEscape(spec, i)
			if !valid {
				// A stray '%' is copied through; servers see what the
				// author wrote.
				out.Push('%')
				i++
				continue
			}
			if isUnreserved(d) {
				out.Push(d)
			} else {
				appendEscaped(out, d)
			}
			i += 3
		case isPathChar(c):
			out.Push(c)
			i++
		default:
			appendEscaped(out, c)
			i++
		}
	}
	return ok
}

// atSegmentStart reports whether the next character written would begin a
// path segment: the output so far either ends with '/' or is still empty
// before the implicit leading slash.
func atSegmentStart(out *Buffer, pathBegin int) bool {
	if out.Len() <= pathBegin {
		return false
	}
	return out.At(out.Len()-1) == '/'
}

// isDotAt reports whether a dot segment ("." or "..", in literal or %2e
// spelling, terminated by a slash or the end of the path) starts at i.
func isDotAt(spec string, i, end int) bool {
	n := dotLenAt(spec, i, end)
	if n == 0 {
		return false
	}
	j := i + n
	if m := dotLenAt(spec, j, end); m > 0 {
		j += m
	}
	return j == end || isSlashByte(spec[j])
}

// dotLenAt returns the length of the dot spelling at i: 1 for '.', 3 for
// "%2e" or "%2E", 0 for anything else.
func dotLenAt(spec string, i, end int) int {
	if i >= end {
		return 0
	}
	if spec[i] == '.' {
		return 1
	}
	if spec[i] == '%' && i+2 < end && spec[i+1] == '2' && (spec[i+2] == 'e' || spec[i+2] == 'E') {
		return 3
	}
	return 0
}

// consumeDotSegment handles a "." or ".." segment starting at i, including
// the slash that terminates it, and returns the next input offset. ".."
// backs the output up one segment, never above the path root.
func consumeDotSegment(spec string, i, end, pathBegin int, out *Buffer) int {
	i += dotLenAt(spec, i, end)
	double := false
	if n := dotLenAt(spec, i, end); n > 0 {
		double = true
		i += n
	}
	if i < end && isSlashByte(spec[i]) {
		i++
	}
	if double {
		backUpToPreviousSlash(pathBegin, out)
	}
	return i
}

// backUpToPreviousSlash truncates out to the slash that opened the last
// complete segment. The output is known to end with '/'.
func backUpToPreviousSlash(pathBegin int, out *Buffer) {
	pos := out.Len() - 1
	if pos <= pathBegin {
		return // already at the root
	}
	pos-- // step over the trailing slash
	for pos > pathBegin && out.At(pos) != '/' {
		pos--
	}
	out.Truncate(pos + 1)
}

// FileCanonicalizePath is the file-URL path canonicalizer: like
// CanonicalizePath but aware of Windows drive letters, so "C|\x" and
// "c:\x" both become "/C:/x". Runs of leading slashes collapse to one. A
// bare drive letter gains a trailing slash.
func FileCanonicalizePath(spec string, path urlparse.Component, out *Buffer) (urlparse.Component, bool) {
	begin := out.Len()
	out.Push('/')
	if !path.Nonempty() {
		return urlparse.MakeRange(begin, out.Len()), true
	}

	i := path.Begin
	for i < path.End() && isSlashByte(spec[i]) {
		i++
	}

	if hasDriveSpecAt(spec, i, path.End()) {
		out.Push(upperDrive(spec[i]))
		out.Push(':')
		i += 2
		if i == path.End() {
			out.Push('/')
			return urlparse.MakeRange(begin, out.Len()), true
		}
	}
	ok := appendPartialPath(spec, i, path.End(), begin, out)
	return urlparse.MakeRange(begin, out.Len()), ok
}

// hasDriveSpecAt reports whether a drive letter plus ':' or '|' separator
// starts at i, followed by a slash or the end of the path.
func hasDriveSpecAt(spec string, i, end int) bool {
	if i+1 >= end || !isAlpha(spec[i]) {
		return false
	}
	if spec[i+1] != ':' && spec[i+1] != '|' {
		return false
	}
	return i+2 == end || isSlashByte(spec[i+2])
}

func upperDrive(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isSlashByte(c byte) bool {
	return c == '/' || c == '\\'
}
