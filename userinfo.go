package urlcanon

import "github.com/martin-sucha/urlcanon/urlparse"

// CanonicalizeUserInfo appends the canonical userinfo block to out:
// "user:pass@", "user@", or nothing at all when both parts are empty or
// absent. A present but empty password collapses to the no-password form,
// so a trailing bare ':' is never emitted.
//
// Username and password each carry their own source string so that the
// replacer can mix sources; usually both point at the same spec.
func CanonicalizeUserInfo(usernameSource string, username urlparse.Component,
	passwordSource string, password urlparse.Component,
	out *Buffer) (outUsername, outPassword urlparse.Component, ok bool) {
	if !username.Nonempty() && !password.Nonempty() {
		return urlparse.Absent(), urlparse.Absent(), true
	}

	begin := out.Len()
	appendUserInfoPart(out, usernameSource, username)
	outUsername = urlparse.MakeRange(begin, out.Len())

	if password.Nonempty() {
		out.Push(':')
		begin = out.Len()
		appendUserInfoPart(out, passwordSource, password)
		outPassword = urlparse.MakeRange(begin, out.Len())
	} else {
		outPassword = urlparse.Absent()
	}
	out.Push('@')
	return outUsername, outPassword, true
}

// appendUserInfoPart escapes one userinfo field. Only unreserved
// characters stay literal; reserved, control, space and high-bit bytes all
// become %XX. Existing valid escapes pass through unchanged so canonical
// input is reproduced byte for byte.
func appendUserInfoPart(out *Buffer, source string, c urlparse.Component) {
	for i := c.Begin; i < c.End(); i++ {
		ch := source[i]
		if isUnreserved(ch) {
			out.Push(ch)
			continue
		}
		if ch == '%' {
			if _, valid := decodeEscape(source, i); valid {
				out.Push('%')
				continue
			}
		}
		appendEscaped(out, ch)
	}
}
