package urlcanon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martin-sucha/urlcanon/urlparse"
)

func resolveAgainst(t *testing.T, base, ref string) (string, bool) {
	t.Helper()
	var cb Buffer
	p, ok := Canonicalize(base, urlparse.Split(base), nil, &cb)
	require.True(t, ok, "base must canonicalize: %q", base)
	var out Buffer
	_, ok = Resolve(cb.String(), p, ref, nil, &out)
	return out.String(), ok
}

func TestIsRelativeURL(t *testing.T) {
	base := "http://h/a/b"
	baseParsed := urlparse.Split(base)

	tests := []struct {
		name       string
		ref        string
		isRelative bool
		relative   string
		ok         bool
	}{
		{name: "plain path", ref: "page.html", isRelative: true, relative: "page.html", ok: true},
		{name: "absolute path", ref: "/x", isRelative: true, relative: "/x", ok: true},
		{name: "query only", ref: "?q", isRelative: true, relative: "?q", ok: true},
		{name: "empty", ref: "", isRelative: true, relative: "", ok: true},
		{name: "leading spaces trimmed", ref: "  page.html", isRelative: true, relative: "page.html", ok: true},
		{name: "other scheme is absolute", ref: "https://o/", isRelative: false, ok: true},
		{name: "same scheme resolves relative", ref: "http:page.html", isRelative: true, relative: "page.html", ok: true},
		{name: "same scheme different case", ref: "HTTP:page.html", isRelative: true, relative: "page.html", ok: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			isRelative, relative, ok := IsRelativeURL(base, baseParsed, test.ref)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.isRelative, isRelative)
			if test.isRelative {
				require.Equal(t, test.relative, relative.Of(test.ref))
			}
		})
	}
}

func TestIsRelativeURLFileBaseDriveReference(t *testing.T) {
	base := "file:///C:/a/b"
	baseParsed := urlparse.Split(base)

	// A drive spec parses as a scheme, but against a file base it is a
	// path reference.
	isRelative, relative, ok := IsRelativeURL(base, baseParsed, "D:/x")
	require.True(t, ok)
	require.True(t, isRelative)
	require.Equal(t, "D:/x", relative.Of("D:/x"))

	// The same text against an http base really is a "d" scheme URL.
	httpBase := "http://h/a"
	isRelative, _, ok = IsRelativeURL(httpBase, urlparse.Split(httpBase), "D:/x")
	require.True(t, ok)
	require.False(t, isRelative)
}

func TestIsRelativeURLOpaqueBase(t *testing.T) {
	base := "javascript:alert(1)"
	baseParsed := urlparse.Split(base)

	// No relative resolution exists over an opaque path.
	isRelative, _, ok := IsRelativeURL(base, baseParsed, "page.html")
	require.False(t, ok)
	require.False(t, isRelative)

	// Absolute references still classify cleanly.
	isRelative, _, ok = IsRelativeURL(base, baseParsed, "http://h/")
	require.True(t, ok)
	require.False(t, isRelative)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "sibling file", base: "http://h/x/y/z", ref: "b", want: "http://h/x/y/b"},
		{name: "parent directory", base: "http://h/x/y/z", ref: "../b", want: "http://h/x/b"},
		{name: "above root absorbed", base: "http://h/x", ref: "/a/../../b", want: "http://h/b"},
		{name: "empty keeps base", base: "http://h/x/y", ref: "", want: "http://h/x/y"},
		{name: "query replaces query and fragment", base: "http://h/p?old#f", ref: "?q", want: "http://h/p?q"},
		{name: "fragment keeps query", base: "http://h/p?q#old", ref: "#new", want: "http://h/p?q#new"},
		{name: "authority relative", base: "http://h/a/b?q", ref: "//h2/p2", want: "http://h2/p2"},
		{name: "authority relative canonicalizes", base: "http://h/", ref: "//EXAMPLE.com:80/x", want: "http://example.com/x"},
		{name: "absolute path drops query", base: "http://h/a/b?q", ref: "/c", want: "http://h/c"},
		{name: "relative with query and fragment", base: "http://h/a/b", ref: "c?q#f", want: "http://h/a/c?q#f"},
		{name: "same scheme prefix", base: "http://h/a/b", ref: "http:page.html", want: "http://h/a/page.html"},
		{name: "absolute reference", base: "http://h/a", ref: "https://other/x", want: "https://other/x"},
		{name: "absolute reference canonicalized", base: "http://h/a", ref: "HTTPS://Other.COM:443/x/../y", want: "https://other.com/y"},
		{name: "leading whitespace trimmed", base: "http://h/x/y", ref: "\n  b", want: "http://h/x/b"},
		{name: "dot reference", base: "http://h/x/y", ref: ".", want: "http://h/x/"},
		{name: "dot dot reference", base: "http://h/x/y/z", ref: "..", want: "http://h/x/"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, ok := resolveAgainst(t, test.base, test.ref)
			require.True(t, ok)
			require.Equal(t, test.want, got)
		})
	}
}

func TestResolveFileURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "sibling", base: "file:///C:/a/b", ref: "c", want: "file:///C:/a/c"},
		{name: "parent", base: "file:///C:/a/b", ref: "../c", want: "file:///C:/c"},
		{name: "drive reference replaces path", base: "file:///C:/a/b", ref: "D:/x", want: "file:///D:/x"},
		{name: "pipe drive reference", base: "file:///C:/a/b", ref: "d|/x", want: "file:///D:/x"},
		{name: "absolute path keeps drive out", base: "file:///C:/a/b", ref: "/x", want: "file:///x"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, ok := resolveAgainst(t, test.base, test.ref)
			require.True(t, ok)
			require.Equal(t, test.want, got)
		})
	}
}

func TestResolveUnresolvableBase(t *testing.T) {
	// Hierarchical base without a host cannot anchor a relative reference;
	// the base comes back unchanged as a safe fallback.
	got, ok := resolveAgainst(t, "http:///p", "b")
	require.False(t, ok)
	require.Equal(t, "http:///p", got)

	// Opaque base likewise.
	got, ok = resolveAgainst(t, "javascript:alert(1)", "b")
	require.False(t, ok)
	require.Equal(t, "javascript:alert(1)", got)
}
