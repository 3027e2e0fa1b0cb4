// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package message holds the key/value envelope of ssb messages and pure
// helpers over lists of them.
//
// Messages are values. Annotations computed for display (author profile,
// reply counts) live in package metadata, keyed by message key.
package message

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/content"
)

// ErrMissingField is the cause of a DecodeError for absent required fields.
var ErrMissingField = errors.New("message: required field missing")

// DecodeError names the envelope field that could not be decoded.
type DecodeError struct {
	Field string
	Err   error
}

func (de *DecodeError) Error() string {
	return fmt.Sprintf("message: field %q: %s", de.Field, de.Err)
}

func (de *DecodeError) Cause() error  { return de.Err }
func (de *DecodeError) Unwrap() error { return de.Err }

// Value is the signed part of a message.
type Value struct {
	Author    ssb.FeedIdentifier     `json:"author"`
	Content   content.Content        `json:"content"`
	Hash      string                 `json:"hash"`
	Previous  *ssb.MessageIdentifier `json:"previous"`
	Sequence  int64                  `json:"sequence"`
	Signature ssb.Identifier         `json:"signature"`
	Timestamp float64                `json:"timestamp"` // claimed by the author, ms since the epoch

	raw json.RawMessage
}

type envelope map[string]json.RawMessage

func (e envelope) field(name string, required bool, v interface{}) error {
	data, ok := e[name]
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if required {
			return &DecodeError{Field: name, Err: ErrMissingField}
		}
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Field: name, Err: err}
	}
	return nil
}

// DecodeValue decodes the value part of a message.
// The envelope is strict, content never fails (see content.Decode).
func DecodeValue(data []byte) (Value, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Value{}, &DecodeError{Field: "value", Err: err}
	}
	if e == nil {
		return Value{}, &DecodeError{Field: "value", Err: ErrMissingField}
	}

	var v Value
	for _, f := range []struct {
		name     string
		required bool
		dst      interface{}
	}{
		{"author", true, &v.Author},
		{"hash", true, &v.Hash},
		{"previous", false, &v.Previous},
		{"sequence", true, &v.Sequence},
		{"signature", true, &v.Signature},
		{"timestamp", true, &v.Timestamp},
	} {
		if err := e.field(f.name, f.required, f.dst); err != nil {
			return Value{}, err
		}
	}

	rawContent, ok := e["content"]
	if !ok {
		return Value{}, &DecodeError{Field: "content", Err: ErrMissingField}
	}
	v.Content = content.Decode(rawContent)

	v.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return v, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec, err := DecodeValue(data)
	if err != nil {
		return err
	}
	*v = dec
	return nil
}

// MarshalJSON writes the bytes the value was decoded from, if there are any.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) > 0 {
		return v.raw, nil
	}
	type plain Value
	return json.Marshal(plain(v))
}

// Raw returns the bytes the value was decoded from, nil for built values.
func (v Value) Raw() json.RawMessage { return v.raw }

func (v Value) ClaimedDate() time.Time { return msToTime(v.Timestamp) }

// timestamps outside of what time.Time can hold in nanoseconds are clamped
const (
	maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))
	minMillis = float64(math.MinInt64 / int64(time.Millisecond))
)

func msToTime(ms float64) time.Time {
	switch {
	case math.IsNaN(ms):
		ms = 0
	case ms > maxMillis:
		ms = maxMillis
	case ms < minMillis:
		ms = minMillis
	}
	return time.Unix(0, int64(ms*float64(time.Millisecond)))
}
