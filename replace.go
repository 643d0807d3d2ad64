package urlcanon

import "github.com/martin-sucha/urlcanon/urlparse"

// Replacements describes component overrides for building a modified
// canonical URL from a base. A nil field keeps the base's value. A
// non-nil field substitutes its raw string, which is canonicalized like
// any other input.
//
// An empty replacement string deletes the component, except for host, path
// and query, where emptiness is itself meaningful: an empty host or path
// stays present-empty, and an empty query keeps its "?".
type Replacements struct {
	Scheme   *string
	Username *string
	Password *string
	Host     *string
	Port     *string
	Path     *string
	Query    *string
	Fragment *string
}

// ReplaceStandardURL builds a canonical URL from a canonical standard base
// plus the given replacements. All components may be replaced.
func ReplaceStandardURL(base string, baseParsed urlparse.Parsed, r Replacements, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	src := singleSource(base)
	p := baseParsed
	applyOverride(&src.scheme, &p.Scheme, r.Scheme, false)
	applyOverride(&src.username, &p.Username, r.Username, false)
	applyOverride(&src.password, &p.Password, r.Password, false)
	applyOverride(&src.host, &p.Host, r.Host, true)
	applyOverride(&src.port, &p.Port, r.Port, false)
	applyOverride(&src.path, &p.Path, r.Path, true)
	applyOverride(&src.query, &p.Query, r.Query, true)
	applyOverride(&src.fragment, &p.Fragment, r.Fragment, false)
	return canonicalizeStandard(src, p, conv, out)
}

// ReplaceFileURL builds a canonical URL from a canonical file base. Only
// host, path, query and fragment replacements take effect; the rest are
// ignored.
func ReplaceFileURL(base string, baseParsed urlparse.Parsed, r Replacements, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	src := singleSource(base)
	p := baseParsed
	applyOverride(&src.host, &p.Host, r.Host, true)
	applyOverride(&src.path, &p.Path, r.Path, true)
	applyOverride(&src.query, &p.Query, r.Query, true)
	applyOverride(&src.fragment, &p.Fragment, r.Fragment, false)
	return canonicalizeFile(src, p, conv, out)
}

// ReplaceOpaqueURL builds a canonical URL from a canonical opaque-path
// base. Only scheme and path replacements take effect.
func ReplaceOpaqueURL(base string, baseParsed urlparse.Parsed, r Replacements, out *Buffer) (urlparse.Parsed, bool) {
	src := singleSource(base)
	p := baseParsed
	applyOverride(&src.scheme, &p.Scheme, r.Scheme, false)
	applyOverride(&src.path, &p.Path, r.Path, true)
	return canonicalizeOpaque(src, p, out)
}

// ReplaceComponents dispatches to the replacer matching the base's shape.
// The base must already be canonical.
func ReplaceComponents(base string, baseParsed urlparse.Parsed, r Replacements, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	switch baseParsed.Shape {
	case urlparse.ShapeFile:
		return ReplaceFileURL(base, baseParsed, r, conv, out)
	case urlparse.ShapeOpaque:
		return ReplaceOpaqueURL(base, baseParsed, r, out)
	default:
		return ReplaceStandardURL(base, baseParsed, r, conv, out)
	}
}

// applyOverride points one component at its replacement string, if any.
// keepEmpty selects present-empty semantics for empty replacements instead
// of deletion.
func applyOverride(source *string, comp *urlparse.Component, override *string, keepEmpty bool) {
	if override == nil {
		return
	}
	*source = *override
	if len(*override) == 0 && !keepEmpty {
		*comp = urlparse.Absent()
		return
	}
	*comp = urlparse.MakeRange(0, len(*override))
}
