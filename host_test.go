package urlcanon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martin-sucha/urlcanon/urlparse"
)

func canonicalHost(t *testing.T, host string) (string, bool) {
	t.Helper()
	var out Buffer
	comp, ok := CanonicalizeHost(host, urlparse.MakeRange(0, len(host)), &out)
	require.Equal(t, out.Len(), comp.End())
	return out.String(), ok
}

func TestCanonicalizeHostNames(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
		ok   bool
	}{
		{name: "simple", host: "example.com", want: "example.com", ok: true},
		{name: "case folded", host: "EXAMPLE.COM", want: "example.com", ok: true},
		{name: "escape decoded", host: "ex%61mple.com", want: "example.com", ok: true},
		{name: "escaped dot decoded", host: "example%2Ecom", want: "example.com", ok: true},
		{name: "trailing dot kept", host: "example.com.", want: "example.com.", ok: true},
		{name: "underscore allowed", host: "some_host", want: "some_host", ok: true},
		{name: "hyphen allowed", host: "a-b.example", want: "a-b.example", ok: true},
		{name: "space rejected but copied", host: "exa mple", want: "exa mple", ok: false},
		{name: "slash rejected but copied", host: "a/b", want: "a/b", ok: false},
		{name: "stray percent rejected", host: "a%zz", want: "a%zz", ok: false},
		{name: "digits but not an address", host: "1.2.3.4.5.6", want: "1.2.3.4.5.6", ok: true},
		{name: "alpha label after digits", host: "1234.example", want: "1234.example", ok: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, ok := canonicalHost(t, test.host)
			require.Equal(t, test.want, got)
			require.Equal(t, test.ok, ok)
		})
	}
}

func TestCanonicalizeHostIDN(t *testing.T) {
	got, ok := canonicalHost(t, "bücher.de")
	require.True(t, ok)
	require.Equal(t, "xn--bcher-kva.de", got)

	// Percent-escaped UTF-8 decodes before the IDN step.
	got, ok = canonicalHost(t, "b%C3%BCcher.de")
	require.True(t, ok)
	require.Equal(t, "xn--bcher-kva.de", got)

	// IDN output must be pure ASCII; garbage input fails but still shows.
	_, ok = canonicalHost(t, "a\x80b.example")
	require.False(t, ok)
}

// Raw bytes that are not valid UTF-8 must never reach the IDN mapping:
// if they did, distinct hosts could collapse to one canonical form.
func TestCanonicalizeHostInvalidUTF8StaysDistinct(t *testing.T) {
	a, okA := canonicalHost(t, "a\x80b.example")
	b, okB := canonicalHost(t, "a\x99b.example")
	require.False(t, okA)
	require.False(t, okB)
	require.NotEqual(t, a, b)
}

func TestCanonicalizeHostIPv4(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
		ok   bool
	}{
		{name: "dotted decimal", host: "127.0.0.1", want: "127.0.0.1", ok: true},
		{name: "hex group", host: "0x7f.0.0.1", want: "127.0.0.1", ok: true},
		{name: "octal group", host: "0177.0.0.1", want: "127.0.0.1", ok: true},
		{name: "two groups", host: "127.1", want: "127.0.0.1", ok: true},
		{name: "single group", host: "2130706433", want: "127.0.0.1", ok: true},
		{name: "single small number", host: "1234", want: "0.0.4.210", ok: true},
		{name: "three groups", host: "192.168.1", want: "192.168.0.1", ok: true},
		{name: "trailing dot", host: "127.0.0.1.", want: "127.0.0.1", ok: true},
		{name: "uppercase hex", host: "0X7F.0.0.1", want: "127.0.0.1", ok: true},
		{name: "escaped digits", host: "%31%32%37.0.0.1", want: "127.0.0.1", ok: true},
		{name: "group over 255", host: "256.0.0.1", want: "256.0.0.1", ok: false},
		{name: "last group over budget", host: "127.0.0.256", want: "127.0.0.256", ok: false},
		{name: "value over 32 bits", host: "4294967296", want: "4294967296", ok: false},
		{name: "bad octal", host: "08.0.0.1", want: "08.0.0.1", ok: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, ok := canonicalHost(t, test.host)
			require.Equal(t, test.want, got)
			require.Equal(t, test.ok, ok)
		})
	}
}

func TestCanonicalizeHostIPv6(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
		ok   bool
	}{
		{name: "longest zero run compressed", host: "[2001:0db8:0000:0000:0000:0000:0000:0001]", want: "[2001:db8::1]", ok: true},
		{name: "all zero stays compressed", host: "[::]", want: "[::]", ok: true},
		{name: "loopback", host: "[::1]", want: "[::1]", ok: true},
		{name: "case folded", host: "[2001:DB8::1]", want: "[2001:db8::1]", ok: true},
		{name: "longest run compressed", host: "[1:0:0:2:0:0:0:3]", want: "[1:0:0:2::3]", ok: true},
		{name: "leftmost run wins tie", host: "[1:0:0:2:0:0:3:4]", want: "[1::2:0:0:3:4]", ok: true},
		{name: "embedded ipv4", host: "[::ffff:192.168.0.1]", want: "[::ffff:192.168.0.1]", ok: true},
		{name: "missing close bracket", host: "[::1", want: "[::1", ok: false},
		{name: "not an address", host: "[nope]", want: "[nope]", ok: false},
		{name: "ipv4 in brackets", host: "[127.0.0.1]", want: "[127.0.0.1]", ok: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got, ok := canonicalHost(t, test.host)
			require.Equal(t, test.want, got)
			require.Equal(t, test.ok, ok)
		})
	}
}

func TestCanonicalizeHostEmpty(t *testing.T) {
	var out Buffer
	comp, ok := CanonicalizeHost("", urlparse.Component{Begin: 0, Len: 0}, &out)
	require.True(t, ok)
	require.True(t, comp.Present())
	require.Equal(t, 0, comp.Len)
	require.Equal(t, "", out.String())
}
