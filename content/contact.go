// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	ssb "github.com/ssbc/go-ssb-model"
)

// Contact follows, unfollows or blocks another identity.
// A missing field is different from false, so they are pointers.
type Contact struct {
	Type      Type         `json:"type"`
	Contact   ssb.Identity `json:"contact"`
	Following *bool        `json:"following,omitempty"`
	Blocking  *bool        `json:"blocking,omitempty"`
	Pub       *bool        `json:"pub,omitempty"`
}

func (*Contact) ContentType() Type { return TypeContact }
func (*Contact) isPayload()        {}

func NewContact(who ssb.Identity) *Contact {
	return &Contact{Type: TypeContact, Contact: who}
}

func NewFollow(who ssb.Identity) *Contact {
	c := NewContact(who)
	t := true
	c.Following = &t
	return c
}

func NewUnfollow(who ssb.Identity) *Contact {
	c := NewContact(who)
	f := false
	c.Following = &f
	return c
}

func NewBlock(who ssb.Identity) *Contact {
	c := NewContact(who)
	t := true
	c.Blocking = &t
	return c
}

func decodeContact(f fields) (*Contact, error) {
	who, err := f.requireIdentifier("contact")
	if err != nil {
		return nil, err
	}
	return &Contact{
		Type:      TypeContact,
		Contact:   who,
		Following: f.optBool("following"),
		Blocking:  f.optBool("blocking"),
		Pub:       f.optBool("pub"),
	}, nil
}

func (c *Contact) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeContact); err != nil {
		return err
	}
	dec, err := decodeContact(f)
	if err != nil {
		return err
	}
	*c = *dec
	return nil
}

func (c *Contact) IsFollowing() bool { return c.Following != nil && *c.Following }
func (c *Contact) IsBlocking() bool  { return c.Blocking != nil && *c.Blocking }
