// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package legacy encodes and verifies classic ssb messages.
//
// The signature and the key of such a message are computed over its
// JSON.stringify(msg, null, 2) form, so EncodePreserveOrder has to reproduce
// that byte for byte, keeping the key order of the input.
//
// See https://spec.scuttlebutt.nz/feed/messages.html for more encoding details.
package legacy

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const indent = "  "

// EncodePreserveOrder pretty-prints the object in, two spaces per level:
//
//	{
//	  "field": "val",
//	  "arr": [
//	    "foo",
//	    "bar"
//	  ],
//	  "obj": {}
//	}
//
// Numbers are written as they appear in the input.
func EncodePreserveOrder(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	return EncodePreserveOrderWithBuffer(in, &buf)
}

// EncodePreserveOrderWithBuffer is EncodePreserveOrder writing into buf.
// The returned slice aliases buf.
func EncodePreserveOrderWithBuffer(in []byte, buf *bytes.Buffer) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(in))
	dec.UseNumber()

	t, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "legacy: expected an object")
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return nil, errors.Errorf("legacy: wanted { got %v", t)
	}
	if err := encodeObject(buf, dec, 1); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("legacy: trailing data after object")
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, dec *json.Decoder, t json.Token, depth int) error {
	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '{':
			return encodeObject(buf, dec, depth)
		case '[':
			return encodeArray(buf, dec, depth)
		}
		return errors.Errorf("legacy: unexpected delimiter %v", v)
	case string:
		buf.WriteByte('"')
		quoteString(buf, v)
		buf.WriteByte('"')
	case json.Number:
		buf.WriteString(v.String())
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	default:
		return errors.Errorf("legacy: unexpected token %T", t)
	}
	return nil
}

// encodeObject is called after the opening brace was read
func encodeObject(buf *bytes.Buffer, dec *json.Decoder, depth int) error {
	buf.WriteByte('{')
	n := 0
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return errors.Wrapf(err, "legacy: object key (depth %d)", depth)
		}
		key, ok := t.(string)
		if !ok {
			return errors.Errorf("legacy: object key is %T", t)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte('"')
		quoteString(buf, key)
		buf.WriteString(`": `)

		t, err = dec.Token()
		if err != nil {
			return errors.Wrapf(err, "legacy: value of %q", key)
		}
		if err := encodeValue(buf, dec, t, depth+1); err != nil {
			return err
		}
		n++
	}
	return closeWith(buf, dec, '}', n, depth)
}

func encodeArray(buf *bytes.Buffer, dec *json.Decoder, depth int) error {
	buf.WriteByte('[')
	n := 0
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return errors.Wrapf(err, "legacy: array element %d", n)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, depth))
		if err := encodeValue(buf, dec, t, depth+1); err != nil {
			return err
		}
		n++
	}
	return closeWith(buf, dec, ']', n, depth)
}

// empty objects and arrays stay on one line: {} and []
func closeWith(buf *bytes.Buffer, dec *json.Decoder, want json.Delim, n, depth int) error {
	t, err := dec.Token()
	if err != nil {
		return errors.Wrapf(err, "legacy: expected %v", want)
	}
	if d, ok := t.(json.Delim); !ok || d != want {
		return errors.Errorf("legacy: wanted %v got %v", want, t)
	}
	if n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, depth-1))
	}
	buf.WriteRune(rune(want))
	return nil
}
