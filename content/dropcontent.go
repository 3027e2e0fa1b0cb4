// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	ssb "github.com/ssbc/go-ssb-model"
)

// DropContentRequest asks peers to forget the content of one of the
// author's own messages, identified by sequence and key.
type DropContentRequest struct {
	Type     Type                  `json:"type"`
	Sequence uint64                `json:"sequence"`
	Hash     ssb.MessageIdentifier `json:"hash"`
}

func (*DropContentRequest) ContentType() Type { return TypeDropContentRequest }
func (*DropContentRequest) isPayload()        {}

func NewDropContentRequest(seq uint64, hash ssb.MessageIdentifier) *DropContentRequest {
	return &DropContentRequest{Type: TypeDropContentRequest, Sequence: seq, Hash: hash}
}

func decodeDropContentRequest(f fields) (*DropContentRequest, error) {
	var seq uint64
	if err := f.require("sequence", &seq); err != nil {
		return nil, err
	}
	if seq == 0 {
		return nil, ssb.ErrMalformedMsg{Reason: "sequence must be positive", Fields: []string{"sequence"}}
	}
	hash, err := f.requireIdentifier("hash")
	if err != nil {
		return nil, err
	}
	return NewDropContentRequest(seq, hash), nil
}

func (dcr *DropContentRequest) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeDropContentRequest); err != nil {
		return err
	}
	dec, err := decodeDropContentRequest(f)
	if err != nil {
		return err
	}
	*dcr = *dec
	return nil
}
