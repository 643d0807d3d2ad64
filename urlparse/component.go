// Package urlparse defines the component data model for URLs and a lexical
// splitter that locates component boundaries in a raw URL string.
//
// A Component identifies a sub-range of a source string. A Parsed record
// aggregates the components of one URL together with its shape. Both are
// plain immutable values: splitting and canonicalization always produce
// fresh records and never mutate existing ones.
package urlparse

// Component identifies a span of a source string as a (Begin, Len) pair.
//
// A Begin of -1 marks the component as absent, which is distinct from
// present but empty (Begin >= 0, Len == 0). The distinction matters for
// serialization: "http://host?" has a present, empty query while
// "http://host" has no query at all.
type Component struct {
	Begin int
	Len   int
}

// Absent returns the sentinel component denoting an absent part.
func Absent() Component {
	return Component{Begin: -1, Len: 0}
}

// MakeRange returns the component covering [begin, end).
func MakeRange(begin, end int) Component {
	return Component{Begin: begin, Len: end - begin}
}

// Present reports whether the component exists in the source, even if empty.
func (c Component) Present() bool {
	return c.Begin >= 0
}

// Nonempty reports whether the component exists and covers at least one
// character.
func (c Component) Nonempty() bool {
	return c.Begin >= 0 && c.Len > 0
}

// End returns the index one past the last character of the component.
func (c Component) End() int {
	return c.Begin + c.Len
}

// Of returns the text the component identifies within spec.
// Absent components yield the empty string.
func (c Component) Of(spec string) string {
	if !c.Present() {
		return ""
	}
	return spec[c.Begin:c.End()]
}

// Shape tags which of the three URL forms a Parsed record describes.
type Shape int

const (
	// ShapeStandard is a hierarchical URL with an authority, like
	// http://user@host:port/path?query#fragment.
	ShapeStandard Shape = iota
	// ShapeFile is a file URL: a host that may be empty, no userinfo or
	// port, and a path that may carry a Windows drive letter.
	ShapeFile
	// ShapeOpaque is a URL whose content after the scheme is not
	// decomposed, like javascript: or data: URLs.
	ShapeOpaque
)

// Parsed holds the component boundaries of one URL over a source string,
// plus the shape the record represents.
//
// A Parsed is produced by the splitter for inputs and produced fresh by
// every canonicalization operation for outputs. It is never mutated in
// place.
type Parsed struct {
	Scheme   Component
	Username Component
	Password Component
	Host     Component
	Port     Component
	Path     Component
	Query    Component
	Fragment Component
	Shape    Shape
}

// emptyParsed returns a Parsed with every component absent.
func emptyParsed(shape Shape) Parsed {
	a := Absent()
	return Parsed{
		Scheme:   a,
		Username: a,
		Password: a,
		Host:     a,
		Port:     a,
		Path:     a,
		Query:    a,
		Fragment: a,
		Shape:    shape,
	}
}
