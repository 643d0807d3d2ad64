// Package urlcanon converts URLs into their canonical string form.
//
// The package consumes a raw URL string together with a urlparse.Parsed
// record of its component boundaries and appends the canonical serialization
// to a caller-owned Buffer, returning a fresh Parsed describing the output.
// Beyond whole-URL canonicalization it supports per-component
// canonicalizers, replacing individual components of a canonical base URL,
// and resolving relative references against a canonical base.
//
// All operations are synchronous pure functions: they share no state, they
// are safe to call concurrently as long as each call uses its own Buffer,
// and they are total over their input domain. On malformed input they
// produce deterministic best-effort output and report failure through their
// boolean result instead of returning an error.
package urlcanon

// maxBufferLen caps buffer growth so that repeated doubling cannot overflow
// size arithmetic. Hitting the cap is fatal for the current operation.
const maxBufferLen = 1 << 30

// Buffer is an append-only output sink for canonicalized text.
//
// The zero value is ready to use. Output is accumulated in a contiguous
// byte slice that grows by doubling; Truncate can shrink the valid range but
// capacity never decreases, so appending after a truncate does not
// reallocate. A Buffer must only be used by one operation at a time.
type Buffer struct {
	buf        []byte
	overflowed bool
}

// NewBuffer returns a Buffer that starts with the given backing storage.
// Callers canonicalizing many URLs can hand in a preallocated array so the
// common case completes without heap growth. The storage's contents are
// ignored; only its capacity is used.
func NewBuffer(storage []byte) *Buffer {
	return &Buffer{buf: storage[:0]}
}

// Push appends a single byte. This is the hot path: the in-capacity case is
// checked first so growth logic stays off the common branch.
func (b *Buffer) Push(c byte) {
	if len(b.buf) < cap(b.buf) {
		b.buf = b.buf[:len(b.buf)+1]
		b.buf[len(b.buf)-1] = c
		return
	}
	if !b.grow(1) {
		return
	}
	b.buf = append(b.buf, c)
}

// Append appends s.
func (b *Buffer) Append(s string) {
	if len(b.buf)+len(s) > cap(b.buf) && !b.grow(len(s)) {
		return
	}
	b.buf = append(b.buf, s...)
}

// grow ensures capacity for at least n more bytes, doubling until it fits.
// It returns false and latches the overflow flag if that would exceed
// maxBufferLen.
func (b *Buffer) grow(n int) bool {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return true
	}
	if need > maxBufferLen {
		b.overflowed = true
		return false
	}
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = 64
	}
	for newCap < need {
		newCap *= 2
	}
	if newCap > maxBufferLen {
		newCap = maxBufferLen
	}
	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
	return true
}

// Truncate shortens the buffer to n bytes. It is used to back out
// previously written output, such as a path segment removed by "..".
// Truncate never grows the buffer; out-of-range values are ignored.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.buf) {
		return
	}
	b.buf = b.buf[:n]
}

// Len returns the number of valid bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// At returns the byte at offset i, which must be less than Len.
func (b *Buffer) At(i int) byte {
	return b.buf[i]
}

// Bytes returns the valid portion of the buffer. The slice aliases the
// buffer's storage and is invalidated by further appends.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// String returns a copy of the buffer contents. The output is not
// null-terminated anywhere; Len is authoritative.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Overflowed reports whether a grow request exceeded the buffer cap. Once
// set, the buffer contents are unspecified and the caller must discard
// them.
func (b *Buffer) Overflowed() bool {
	return b.overflowed
}
