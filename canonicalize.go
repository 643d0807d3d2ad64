package urlcanon

import "github.com/martin-sucha/urlcanon/urlparse"

// componentSource carries one source string per component. Whole-URL
// canonicalization points every field at the same spec; the replacer and
// the relative resolver mix sources, which is why every canonicalizer
// takes its text and component separately.
type componentSource struct {
	scheme   string
	username string
	password string
	host     string
	port     string
	path     string
	query    string
	fragment string
}

func singleSource(spec string) componentSource {
	return componentSource{
		scheme:   spec,
		username: spec,
		password: spec,
		host:     spec,
		port:     spec,
		path:     spec,
		query:    spec,
		fragment: spec,
	}
}

// Canonicalize appends the canonical form of spec to out, dispatching on
// the shape recorded in parsed. The buffer should start empty for a fresh
// canonicalization; prior contents are never replaced, only appended to.
// It returns a fresh Parsed describing the output and an overall success
// flag: on failure a deterministic best-effort serialization is still
// written, safe to display but not to navigate.
func Canonicalize(spec string, parsed urlparse.Parsed, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	switch parsed.Shape {
	case urlparse.ShapeFile:
		return CanonicalizeFileURL(spec, parsed, conv, out)
	case urlparse.ShapeOpaque:
		return CanonicalizeOpaqueURL(spec, parsed, out)
	default:
		return CanonicalizeStandardURL(spec, parsed, conv, out)
	}
}

// CanonicalizeStandardURL canonicalizes a hierarchical URL with an
// authority: scheme, "//", userinfo, host, port, path (defaulted to "/"),
// query and fragment, in that fixed order.
func CanonicalizeStandardURL(spec string, parsed urlparse.Parsed, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	return canonicalizeStandard(singleSource(spec), parsed, conv, out)
}

// CanonicalizeFileURL canonicalizes a file URL. The host may be empty for
// local files; userinfo and port are never emitted; the path canonicalizer
// understands drive letters.
func CanonicalizeFileURL(spec string, parsed urlparse.Parsed, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	return canonicalizeFile(singleSource(spec), parsed, conv, out)
}

// CanonicalizeOpaqueURL canonicalizes an opaque-path URL such as
// javascript:. Only the scheme and the path are emitted; the path is
// copied verbatim, without escaping, and every other component is ignored
// even if present in the input.
func CanonicalizeOpaqueURL(spec string, parsed urlparse.Parsed, out *Buffer) (urlparse.Parsed, bool) {
	return canonicalizeOpaque(singleSource(spec), parsed, out)
}

func canonicalizeStandard(src componentSource, p urlparse.Parsed, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	outParsed := urlparse.Parsed{Shape: urlparse.ShapeStandard}
	scheme, schemeOK := CanonicalizeScheme(src.scheme, p.Scheme, out)
	outParsed.Scheme = scheme

	out.Append("//")
	var userOK, hostOK, portOK, pathOK bool
	outParsed.Username, outParsed.Password, userOK = CanonicalizeUserInfo(
		src.username, p.Username, src.password, p.Password, out)
	outParsed.Host, hostOK = CanonicalizeHost(src.host, p.Host, out)
	defaultPort := DefaultPortForScheme(componentText(out, scheme))
	outParsed.Port, portOK = CanonicalizePort(src.port, p.Port, defaultPort, out)
	outParsed.Path, pathOK = CanonicalizePath(src.path, p.Path, out)
	outParsed.Query = CanonicalizeQuery(src.query, p.Query, conv, out)
	// Fragment failure is advisory and does not fail the URL.
	outParsed.Fragment, _ = CanonicalizeFragment(src.fragment, p.Fragment, out)

	ok := schemeOK && userOK && hostOK && portOK && pathOK && !out.Overflowed()
	return outParsed, ok
}

func canonicalizeFile(src componentSource, p urlparse.Parsed, conv CharsetConverter, out *Buffer) (urlparse.Parsed, bool) {
	outParsed := urlparse.Parsed{
		Shape:    urlparse.ShapeFile,
		Username: urlparse.Absent(),
		Password: urlparse.Absent(),
		Port:     urlparse.Absent(),
	}
	scheme, schemeOK := CanonicalizeScheme(src.scheme, p.Scheme, out)
	outParsed.Scheme = scheme

	out.Append("//")
	var hostOK, pathOK bool
	outParsed.Host, hostOK = CanonicalizeHost(src.host, p.Host, out)
	outParsed.Path, pathOK = FileCanonicalizePath(src.path, p.Path, out)
	outParsed.Query = CanonicalizeQuery(src.query, p.Query, conv, out)
	outParsed.Fragment, _ = CanonicalizeFragment(src.fragment, p.Fragment, out)

	ok := schemeOK && hostOK && pathOK && !out.Overflowed()
	return outParsed, ok
}

func canonicalizeOpaque(src componentSource, p urlparse.Parsed, out *Buffer) (urlparse.Parsed, bool) {
	outParsed := urlparse.Parsed{
		Shape:    urlparse.ShapeOpaque,
		Username: urlparse.Absent(),
		Password: urlparse.Absent(),
		Host:     urlparse.Absent(),
		Port:     urlparse.Absent(),
		Query:    urlparse.Absent(),
		Fragment: urlparse.Absent(),
	}
	scheme, schemeOK := CanonicalizeScheme(src.scheme, p.Scheme, out)
	outParsed.Scheme = scheme

	if p.Path.Present() {
		begin := out.Len()
		out.Append(src.path[p.Path.Begin:p.Path.End()])
		outParsed.Path = urlparse.MakeRange(begin, out.Len())
	} else {
		outParsed.Path = urlparse.Absent()
	}
	return outParsed, schemeOK && !out.Overflowed()
}

// componentText reads a component back out of the output buffer.
func componentText(out *Buffer, c urlparse.Component) string {
	if !c.Present() {
		return ""
	}
	return string(out.Bytes()[c.Begin:c.End()])
}
