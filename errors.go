// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package ssb

import (
	"fmt"
	"strings"
)

// ErrMalformedMsg is returned by the content decoders if a required field is
// missing or has the wrong shape.
type ErrMalformedMsg struct {
	Reason string
	Fields []string
}

func (emm ErrMalformedMsg) Error() string {
	s := "ssb: malformed message: " + emm.Reason
	if len(emm.Fields) > 0 {
		s += fmt.Sprintf(" (fields: %s)", strings.Join(emm.Fields, ","))
	}
	return s
}

// ErrWrongType is returned when a decoder for one content type was handed another.
type ErrWrongType struct {
	Want, Has string
}

func (ewt ErrWrongType) Error() string {
	return fmt.Sprintf("ssb: wrong message type. expected %q - got %q", ewt.Want, ewt.Has)
}

// ErrInvalidIdentifier is returned by the strict ref conversions.
type ErrInvalidIdentifier struct {
	Ident Identifier
	Want  Sigil

	cause error
}

func (eii ErrInvalidIdentifier) Error() string {
	if eii.cause != nil {
		return fmt.Sprintf("ssb: %q is not a valid %s identifier: %s", eii.Ident, eii.Want, eii.cause)
	}
	return fmt.Sprintf("ssb: %q is not a valid %s identifier", eii.Ident, eii.Want)
}

// Cause lets errors.Cause reach the underlying refs error.
func (eii ErrInvalidIdentifier) Cause() error { return eii.cause }

func (eii ErrInvalidIdentifier) Unwrap() error { return eii.cause }
