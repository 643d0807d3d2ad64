package urlcanon

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// CharsetConverter converts query text into an embedder-chosen output
// encoding. It is used only for query canonicalization and must not fail:
// unrepresentable characters are emitted as a percent-escaped decimal
// numeric character reference, such as "%26%2320320%3B" for U+4F60.
//
// A nil CharsetConverter means UTF-8 output.
type CharsetConverter interface {
	// Convert appends s, re-encoded into the target charset, to out.
	// The input is valid UTF-8; callers repair invalid sequences before
	// converting. The appended bytes are raw, not percent-escaped; the
	// query canonicalizer escapes them afterwards.
	Convert(s string, out *Buffer)
}

// NewConverter returns a CharsetConverter for the named character set,
// looked up by its HTML/WHATWG label ("windows-1252", "shift_jis", ...).
func NewConverter(name string) (CharsetConverter, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("lookup charset %q: %w", name, err)
	}
	return &textConverter{enc: enc}, nil
}

type textConverter struct {
	enc encoding.Encoding
}

func (c *textConverter) Convert(s string, out *Buffer) {
	enc := c.enc.NewEncoder()
	for _, r := range s {
		if r < 0x80 {
			out.Push(byte(r))
			continue
		}
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			appendNumericReference(out, r)
			continue
		}
		out.Append(string(b))
	}
}

// appendNumericReference writes the percent-escaped decimal character
// reference for r: '&' '#' digits ';' with the three non-digits escaped.
func appendNumericReference(out *Buffer, r rune) {
	out.Append("%26%23")
	out.Append(strconv.Itoa(int(r)))
	out.Append("%3B")
}
