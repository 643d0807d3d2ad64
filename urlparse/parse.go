package urlparse

// ExtractScheme locates the scheme in spec. The returned component excludes
// the trailing colon. It returns false if spec has no scheme, which means no
// colon preceded by a valid scheme name (a letter followed by letters,
// digits, '+', '-' or '.').
func ExtractScheme(spec string) (Component, bool) {
	if len(spec) == 0 || !isSchemeStart(spec[0]) {
		return Absent(), false
	}
	for i := 1; i < len(spec); i++ {
		c := spec[i]
		switch {
		case c == ':':
			return MakeRange(0, i), true
		case isSchemeChar(c):
			// keep scanning
		default:
			return Absent(), false
		}
	}
	return Absent(), false
}

func isSchemeStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSchemeChar(c byte) bool {
	return isSchemeStart(c) || (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.'
}

// Split locates the components of spec, choosing the URL shape from the
// scheme and the characters that follow it. "file" schemes split as file
// URLs, schemes followed by slashes split as standard URLs, and anything
// else splits as an opaque-path URL. Input without a recognizable scheme is
// treated as a standard URL with an absent scheme so that canonicalization
// can still produce best-effort output.
func Split(spec string) Parsed {
	scheme, ok := ExtractScheme(spec)
	if !ok {
		return SplitStandard(spec)
	}
	if equalFold(scheme.Of(spec), "file") {
		return SplitFile(spec)
	}
	rest := spec[scheme.End()+1:]
	if len(rest) > 0 && isSlash(rest[0]) {
		return SplitStandard(spec)
	}
	return SplitOpaque(spec)
}

// SplitStandard splits spec as a hierarchical URL with an authority.
func SplitStandard(spec string) Parsed {
	p := emptyParsed(ShapeStandard)
	i := 0
	if scheme, ok := ExtractScheme(spec); ok {
		p.Scheme = scheme
		i = scheme.End() + 1
	}
	splitAfterScheme(spec, i, &p, false)
	return p
}

// SplitFile splits spec as a file URL. Unlike SplitStandard, a drive letter
// in the authority position ("file://C:/x") is recognized as the start of
// the path rather than a host.
func SplitFile(spec string) Parsed {
	p := emptyParsed(ShapeFile)
	i := 0
	if scheme, ok := ExtractScheme(spec); ok {
		p.Scheme = scheme
		i = scheme.End() + 1
	}
	splitAfterScheme(spec, i, &p, true)
	return p
}

// SplitOpaque splits spec as an opaque-path URL: everything after the
// scheme's colon is the path, undecomposed.
func SplitOpaque(spec string) Parsed {
	p := emptyParsed(ShapeOpaque)
	i := 0
	if scheme, ok := ExtractScheme(spec); ok {
		p.Scheme = scheme
		i = scheme.End() + 1
	}
	p.Path = MakeRange(i, len(spec))
	return p
}

// splitAfterScheme locates authority, path, query and fragment starting at
// offset i, just past the scheme's colon.
func splitAfterScheme(spec string, i int, p *Parsed, file bool) {
	// Skip up to two slashes introducing the authority.
	slashes := 0
	for i < len(spec) && slashes < 2 && isSlash(spec[i]) {
		i++
		slashes++
	}

	authorityEnd := i
	for authorityEnd < len(spec) && !isAuthorityTerminator(spec[authorityEnd]) {
		authorityEnd++
	}
	authority := spec[i:authorityEnd]

	if file && looksLikeDriveSpec(authority) {
		// "file://C:/x" has no host, the drive belongs to the path.
		p.Host = Component{Begin: i, Len: 0}
		p.Path = MakeRange(i, len(spec))
		splitTrailing(spec, p)
		return
	}

	splitAuthority(spec, i, authorityEnd, p)

	if authorityEnd < len(spec) {
		p.Path = MakeRange(authorityEnd, len(spec))
		splitTrailing(spec, p)
	}
}

// splitTrailing trims query and fragment off the end of p.Path.
func splitTrailing(spec string, p *Parsed) {
	pathEnd := p.Path.End()
	for j := p.Path.Begin; j < pathEnd; j++ {
		switch spec[j] {
		case '?':
			p.Path = MakeRange(p.Path.Begin, j)
			queryEnd := pathEnd
			for k := j + 1; k < pathEnd; k++ {
				if spec[k] == '#' {
					queryEnd = k
					p.Fragment = MakeRange(k+1, pathEnd)
					break
				}
			}
			p.Query = MakeRange(j+1, queryEnd)
			return
		case '#':
			p.Path = MakeRange(p.Path.Begin, j)
			p.Fragment = MakeRange(j+1, pathEnd)
			return
		}
	}
}

// splitAuthority locates userinfo, host and port within spec[begin:end).
func splitAuthority(spec string, begin, end int, p *Parsed) {
	hostBegin := begin
	// The userinfo terminator is the last '@' so that hosts containing a
	// literal '@' cannot smuggle a different host past the splitter.
	for j := end - 1; j >= begin; j-- {
		if spec[j] != '@' {
			continue
		}
		colon := -1
		for k := begin; k < j; k++ {
			if spec[k] == ':' {
				colon = k
				break
			}
		}
		if colon >= 0 {
			p.Username = MakeRange(begin, colon)
			p.Password = MakeRange(colon+1, j)
		} else {
			p.Username = MakeRange(begin, j)
		}
		hostBegin = j + 1
		break
	}

	hostEnd := end
	if hostBegin < end && spec[hostBegin] == '[' {
		// Bracketed IPv6 literal: the port colon comes after ']'.
		close := hostBegin
		for close < end && spec[close] != ']' {
			close++
		}
		if close < end {
			close++
		}
		hostEnd = close
	} else {
		for j := hostBegin; j < end; j++ {
			if spec[j] == ':' {
				hostEnd = j
				break
			}
		}
	}
	p.Host = MakeRange(hostBegin, hostEnd)
	if hostEnd < end && spec[hostEnd] == ':' {
		p.Port = MakeRange(hostEnd+1, end)
	}
}

// looksLikeDriveSpec reports whether s is a Windows drive spec such as
// "C:", "C|" or "C:\x".
func looksLikeDriveSpec(s string) bool {
	if len(s) < 2 || !isSchemeStart(s[0]) {
		return false
	}
	if s[1] != ':' && s[1] != '|' {
		return false
	}
	return len(s) == 2 || isSlash(s[2])
}

func isSlash(c byte) bool {
	return c == '/' || c == '\\'
}

func isAuthorityTerminator(c byte) bool {
	return isSlash(c) || c == '?' || c == '#'
}

// equalFold reports whether two ASCII strings are equal ignoring case.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
