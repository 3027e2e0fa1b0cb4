// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package legacy

import (
	"bytes"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

var hex = "0123456789abcdef"

// quoteString writes s escaped like JSON.stringify does, without the quotes.
// https://262.ecma-international.org/6.0/#sec-quotejsonstring
func quoteString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if safeSet[b] {
				i++
				continue
			}

			if start < i {
				buf.WriteString(s[start:i])
			}

			buf.WriteByte('\\')

			switch b {
			case '\\', '"':
				buf.WriteByte(b)
			case '\n':
				buf.WriteByte('n')
			case '\r':
				buf.WriteByte('r')
			case '\t':
				buf.WriteByte('t')
			case '\b':
				buf.WriteByte('b')
			case '\f':
				buf.WriteByte('f')
			default:
				buf.WriteString(`u00`)
				buf.WriteByte(hex[b>>4])
				buf.WriteByte(hex[b&0xF])
			}

			i++
			start = i
			continue
		}

		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			if start < i {
				buf.WriteString(s[start:i])
			}
			buf.WriteString(`\ufffd`)
			i += size
			start = i
			continue
		}

		i += size
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var utf16 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// InternalV8Binary returns what node's new Buffer(in, "binary") makes of a
// string: the low byte of every utf-16 code unit. The message key is the
// sha256 of these bytes, not of the utf-8 JSON.
func InternalV8Binary(in []byte) ([]byte, error) {
	u16b := make([]byte, len(in)*2)

	// encoders keep state, one per call
	nDst, nSrc, err := utf16.NewEncoder().Transform(u16b, in, true)
	if err != nil {
		return nil, errors.Wrap(err, "legacy: utf-16 transform failed")
	}
	if nSrc != len(in) {
		return nil, errors.Errorf("legacy: utf-16 transform consumed %d of %d bytes", nSrc, len(in))
	}
	u16b = u16b[:nDst]

	if len(u16b)%2 != 0 {
		return nil, errors.New("legacy: odd number of utf-16 bytes")
	}
	for i := 0; i < len(u16b)/2; i++ {
		u16b[i] = u16b[i*2]
	}
	u16b = u16b[:len(u16b)/2]

	return u16b, nil
}

var safeSet = [utf8.RuneSelf]bool{
	' ':      true,
	'!':      true,
	'"':      false,
	'#':      true,
	'$':      true,
	'%':      true,
	'&':      true,
	'\'':     true,
	'(':      true,
	')':      true,
	'*':      true,
	'+':      true,
	',':      true,
	'-':      true,
	'.':      true,
	'/':      true,
	'0':      true,
	'1':      true,
	'2':      true,
	'3':      true,
	'4':      true,
	'5':      true,
	'6':      true,
	'7':      true,
	'8':      true,
	'9':      true,
	':':      true,
	';':      true,
	'<':      true,
	'=':      true,
	'>':      true,
	'?':      true,
	'@':      true,
	'A':      true,
	'B':      true,
	'C':      true,
	'D':      true,
	'E':      true,
	'F':      true,
	'G':      true,
	'H':      true,
	'I':      true,
	'J':      true,
	'K':      true,
	'L':      true,
	'M':      true,
	'N':      true,
	'O':      true,
	'P':      true,
	'Q':      true,
	'R':      true,
	'S':      true,
	'T':      true,
	'U':      true,
	'V':      true,
	'W':      true,
	'X':      true,
	'Y':      true,
	'Z':      true,
	'[':      true,
	'\\':     false,
	']':      true,
	'^':      true,
	'_':      true,
	'`':      true,
	'a':      true,
	'b':      true,
	'c':      true,
	'd':      true,
	'e':      true,
	'f':      true,
	'g':      true,
	'h':      true,
	'i':      true,
	'j':      true,
	'k':      true,
	'l':      true,
	'm':      true,
	'n':      true,
	'o':      true,
	'p':      true,
	'q':      true,
	'r':      true,
	's':      true,
	't':      true,
	'u':      true,
	'v':      true,
	'w':      true,
	'x':      true,
	'y':      true,
	'z':      true,
	'{':      true,
	'|':      true,
	'}':      true,
	'~':      true,
	'\u007f': true,
}
