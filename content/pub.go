// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/multiserver"
)

// Pub announces a pub server that accepts connections.
type Pub struct {
	Type    Type       `json:"type"`
	Address PubAddress `json:"address"`
}

type PubAddress struct {
	Host string       `json:"host"`
	Port uint         `json:"port"`
	Key  ssb.Identity `json:"key"`
}

func (*Pub) ContentType() Type { return TypePub }
func (*Pub) isPayload()        {}

func decodePub(f fields) (*Pub, error) {
	var addr PubAddress
	if err := f.require("address", &addr); err != nil {
		return nil, err
	}
	if addr.Host == "" || addr.Key == "" {
		return nil, ssb.ErrMalformedMsg{Reason: "pub address incomplete", Fields: []string{"host", "key"}}
	}
	return &Pub{Type: TypePub, Address: addr}, nil
}

func (p *Pub) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypePub); err != nil {
		return err
	}
	dec, err := decodePub(f)
	if err != nil {
		return err
	}
	*p = *dec
	return nil
}

// Multiserver converts the announcement to a dialable address.
func (p *Pub) Multiserver() multiserver.Address {
	key := p.Address.Key.ID()
	if key == string(ssb.IdentifierUnsupported) {
		key = string(p.Address.Key)
	}
	return multiserver.Address{
		KeyID: key,
		Host:  p.Address.Host,
		Port:  p.Address.Port,
	}
}
