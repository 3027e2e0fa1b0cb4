// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"github.com/pkg/errors"

	"github.com/ssbc/go-ssb-model/multiserver"
)

// AddressAnnouncement is published by a peer (usually a pub) to tell where
// it can be reached.
type AddressAnnouncement struct {
	Type         Type                `json:"type"`
	Address      multiserver.Address `json:"address"`
	Availability float64             `json:"availability,omitempty"`
}

func (*AddressAnnouncement) ContentType() Type { return TypeAddress }
func (*AddressAnnouncement) isPayload()        {}

func NewAddressAnnouncement(addr multiserver.Address) *AddressAnnouncement {
	return &AddressAnnouncement{Type: TypeAddress, Address: addr}
}

func decodeAddressAnnouncement(f fields) (*AddressAnnouncement, error) {
	raw, err := f.requireString("address")
	if err != nil {
		return nil, err
	}
	addr, err := multiserver.ParseAddress(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "content: address announcement %q", raw)
	}
	a := AddressAnnouncement{Type: TypeAddress, Address: *addr}
	var avail float64
	if f.opt("availability", &avail) {
		a.Availability = avail
	}
	return &a, nil
}

func (a *AddressAnnouncement) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeAddress); err != nil {
		return err
	}
	dec, err := decodeAddressAnnouncement(f)
	if err != nil {
		return err
	}
	*a = *dec
	return nil
}
