// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// fields is the map stage of every payload decoder.
// Optional fields that do not decode are dropped, required ones fail.
type fields map[string]json.RawMessage

var null = []byte("null")

func parseFields(raw []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "content: map stage failed")
	}
	if f == nil {
		return nil, ssb.ErrMalformedMsg{Reason: "content is null"}
	}
	return f, nil
}

func (f fields) has(key string) bool {
	v, ok := f[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), null)
}

// opt decodes key into v and reports if that worked
func (f fields) opt(key string, v interface{}) bool {
	if !f.has(key) {
		return false
	}
	return json.Unmarshal(f[key], v) == nil
}

func (f fields) require(key string, v interface{}) error {
	if !f.has(key) {
		return ssb.ErrMalformedMsg{Reason: "missing required field", Fields: []string{key}}
	}
	if err := json.Unmarshal(f[key], v); err != nil {
		return errors.Wrapf(err, "content: field %q", key)
	}
	return nil
}

func (f fields) str(key string) string {
	var s string
	f.opt(key, &s)
	return s
}

func (f fields) requireString(key string) (string, error) {
	var s string
	err := f.require(key, &s)
	return s, err
}

func (f fields) requireIdentifier(key string) (ssb.Identifier, error) {
	s, err := f.requireString(key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", ssb.ErrMalformedMsg{Reason: "empty identifier", Fields: []string{key}}
	}
	return ssb.Identifier(s), nil
}

func (f fields) optIdentifier(key string) *ssb.Identifier {
	var s string
	if !f.opt(key, &s) || s == "" {
		return nil
	}
	id := ssb.Identifier(s)
	return &id
}

func (f fields) optBool(key string) *bool {
	var b bool
	if !f.opt(key, &b) {
		return nil
	}
	return &b
}

// identifiers accepts a single string or a list of them (like branch)
func (f fields) identifiers(key string) []ssb.Identifier {
	var single string
	if f.opt(key, &single) {
		if single == "" {
			return nil
		}
		return []ssb.Identifier{ssb.Identifier(single)}
	}
	var list []ssb.Identifier
	if f.opt(key, &list) && len(list) > 0 {
		return list
	}
	return nil
}

// elements returns the raw entries of a list field, so that they can be
// decoded one by one
func (f fields) elements(key string) []json.RawMessage {
	var list []json.RawMessage
	if !f.opt(key, &list) {
		return nil
	}
	return list
}

// mentions keeps the entries that decode and drops the rest
func (f fields) mentions() Mentions {
	var ms Mentions
	for _, raw := range f.elements("mentions") {
		var m Mention
		if json.Unmarshal(raw, &m) == nil {
			ms = append(ms, m)
		}
	}
	return ms
}

// recipients keeps the entries that decode and drops the rest
func (f fields) recipients() Recipients {
	var rs Recipients
	for _, raw := range f.elements("recps") {
		var r Recipient
		if json.Unmarshal(raw, &r) == nil {
			rs = append(rs, r)
		}
	}
	return rs
}

func (f fields) thread() Thread {
	return Thread{
		Root:   f.optIdentifier("root"),
		Branch: f.identifiers("branch"),
	}
}

// checkType guards the payload decoders when they are used on their own.
func (f fields) checkType(want Type) error {
	var has string
	if err := f.require("type", &has); err != nil {
		return err
	}
	if has != string(want) {
		return ssb.ErrWrongType{Want: string(want), Has: has}
	}
	return nil
}
