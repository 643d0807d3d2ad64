package urlcanon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martin-sucha/urlcanon/urlparse"
)

func TestCanonicalizePort(t *testing.T) {
	tests := []struct {
		name        string
		port        string
		defaultPort int
		want        string
		ok          bool
	}{
		{name: "plain", port: "8080", defaultPort: 80, want: ":8080", ok: true},
		{name: "default elided", port: "80", defaultPort: 80, want: "", ok: true},
		{name: "default with leading zeros elided", port: "0080", defaultPort: 80, want: "", ok: true},
		{name: "leading zeros stripped", port: "0443", defaultPort: 80, want: ":443", ok: true},
		{name: "no default", port: "80", defaultPort: -1, want: ":80", ok: true},
		{name: "max", port: "65535", defaultPort: -1, want: ":65535", ok: true},
		{name: "over range", port: "65536", defaultPort: -1, want: ":65536", ok: false},
		{name: "hex rejected", port: "0x50", defaultPort: -1, want: ":0x50", ok: false},
		{name: "garbage", port: "8a", defaultPort: -1, want: ":8a", ok: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			var out Buffer
			comp, ok := CanonicalizePort(test.port, urlparse.MakeRange(0, len(test.port)), test.defaultPort, &out)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.want, out.String())
			if test.want == "" {
				require.False(t, comp.Present())
			} else {
				require.Equal(t, test.want[1:], comp.Of(out.String()))
			}
		})
	}
}

func TestCanonicalizePortAbsentAndEmpty(t *testing.T) {
	var out Buffer
	comp, ok := CanonicalizePort("", urlparse.Absent(), 80, &out)
	require.True(t, ok)
	require.False(t, comp.Present())

	// "host:" with nothing after the colon drops the colon too.
	comp, ok = CanonicalizePort("", urlparse.Component{Begin: 0, Len: 0}, 80, &out)
	require.True(t, ok)
	require.False(t, comp.Present())
	require.Equal(t, "", out.String())
}
