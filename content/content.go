// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package content decodes the content field of ssb messages.
//
// Decoding never fails. Whatever arrives ends up as a Content value whose
// TypeErr and ContentErr fields say what went wrong, so a feed with broken,
// private or unknown messages can still be displayed in full.
package content

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// Payload is one of the decoded shapes a content can have.
// The set is closed, see the variants in this package.
type Payload interface {
	ContentType() Type
	isPayload()
}

// Encrypted is a private message box that was not (or could not be) opened.
type Encrypted struct {
	Box string
}

func (Encrypted) ContentType() Type { return TypeUnknown }
func (Encrypted) isPayload()        {}

// Unsupported keeps what is known about content without a decoded payload.
// Raw is the original object and is written back out unchanged by MarshalJSON.
type Unsupported struct {
	TypeString string
	Reason     string
	Raw        json.RawMessage
}

func (Unsupported) ContentType() Type { return TypeUnsupported }
func (Unsupported) isPayload()        {}

var ErrMissingType = ssb.ErrMalformedMsg{Reason: "content has no type field", Fields: []string{"type"}}

// Content is the tagged union of all known content shapes.
type Content struct {
	Type       Type
	TypeString string

	// TypeErr is set if the envelope or the type field could not be decoded.
	TypeErr error
	// ContentErr is set if the type was known but its payload did not decode.
	ContentErr error

	payload Payload
}

// Decode turns raw content JSON into a Content. It never fails.
func Decode(raw []byte) Content {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] != '{' && !bytes.Equal(trimmed, jsonNull) {
		box := string(trimmed)
		var s string
		if json.Unmarshal(trimmed, &s) == nil {
			box = s
		}
		return Content{
			Type:       TypeUnknown,
			TypeString: string(TypeUnknown),
			TypeErr:    errors.New("content: not an object, assuming a private box"),
			payload:    Encrypted{Box: box},
		}
	}

	var c = Content{
		Type:       TypeUnsupported,
		TypeString: InvalidJSON,
	}

	f, err := parseFields(trimmed)
	if err != nil {
		c.TypeErr = err
		c.payload = Unsupported{TypeString: c.TypeString, Reason: err.Error(), Raw: keep(trimmed)}
		return c
	}

	c.TypeString, c.Type, c.TypeErr = typeOf(f)
	if c.TypeErr != nil {
		c.payload = Unsupported{TypeString: c.TypeString, Reason: c.TypeErr.Error(), Raw: keep(trimmed)}
		return c
	}

	p, err := decodePayload(c.Type, f)
	if err != nil {
		c.ContentErr = err
		c.payload = Unsupported{TypeString: c.TypeString, Reason: err.Error(), Raw: keep(trimmed)}
		return c
	}
	c.payload = p
	return c
}

var jsonNull = []byte("null")

// keep copies raw for an Unsupported payload, the input buffer may be reused.
func keep(raw []byte) json.RawMessage {
	return append(json.RawMessage(nil), raw...)
}

func typeOf(f fields) (string, Type, error) {
	v, ok := f["type"]
	if !ok {
		return InvalidJSON, TypeUnsupported, ErrMissingType
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return InvalidJSON, TypeUnsupported, errors.Wrap(err, "content: type field is not a string")
	}
	t, err := ParseType(s)
	return s, t, err
}

func decodePayload(t Type, f fields) (Payload, error) {
	switch t {
	case TypeAbout:
		return decodeAbout(f)
	case TypeAddress:
		return decodeAddressAnnouncement(f)
	case TypeContact:
		return decodeContact(f)
	case TypeDropContentRequest:
		return decodeDropContentRequest(f)
	case TypePost:
		return decodePost(f)
	case TypePub:
		return decodePub(f)
	case TypeVote:
		return decodeContentVote(f)
	case TypeBlog:
		return decodeBlog(f)
	case TypeGathering:
		return decodeGathering(f)
	case TypeRoomAlias:
		return decodeRoomAlias(f)
	}
	return nil, ErrUnknownType{TypeString: string(t)}
}

// FromPayload wraps a locally built payload, for publishing.
func FromPayload(p Payload) Content {
	t := p.ContentType()
	c := Content{Type: t, TypeString: string(t), payload: p}
	if u, ok := p.(Unsupported); ok {
		c.TypeString = u.TypeString
	}
	return c
}

// UnmarshalJSON never returns an error, see Decode.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Decode(data)
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	switch p := c.payload.(type) {
	case nil:
		return nil, errors.New("content: nothing to encode")
	case Encrypted:
		return json.Marshal(p.Box)
	case Unsupported:
		if len(p.Raw) == 0 {
			return nil, errors.Errorf("content: can not encode unsupported %q", p.TypeString)
		}
		return p.Raw, nil
	default:
		return json.Marshal(p)
	}
}

func (c Content) Payload() Payload { return c.payload }

// IsValid reports a known type with a decoded payload.
func (c Content) IsValid() bool {
	if c.Type == TypeUnsupported || c.Type == TypeUnknown || c.ContentErr != nil {
		return false
	}
	switch c.payload.(type) {
	case nil, Encrypted, Unsupported:
		return false
	}
	return true
}

func (c Content) IsEncrypted() bool { return c.Type == TypeUnknown }

func (c Content) is(t Type) bool { return c.IsValid() && c.Type == t }

func (c Content) IsAbout() bool              { return c.is(TypeAbout) }
func (c Content) IsAddress() bool            { return c.is(TypeAddress) }
func (c Content) IsContact() bool            { return c.is(TypeContact) }
func (c Content) IsPost() bool               { return c.is(TypePost) }
func (c Content) IsBlog() bool               { return c.is(TypeBlog) }
func (c Content) IsVote() bool               { return c.is(TypeVote) }
func (c Content) IsPub() bool                { return c.is(TypePub) }
func (c Content) IsGathering() bool          { return c.is(TypeGathering) }
func (c Content) IsDropContentRequest() bool { return c.is(TypeDropContentRequest) }
func (c Content) IsRoomAlias() bool          { return c.is(TypeRoomAlias) }

func (c Content) About() *About {
	p, _ := c.payload.(*About)
	return p
}

func (c Content) Address() *AddressAnnouncement {
	p, _ := c.payload.(*AddressAnnouncement)
	return p
}

func (c Content) Contact() *Contact {
	p, _ := c.payload.(*Contact)
	return p
}

func (c Content) Post() *Post {
	p, _ := c.payload.(*Post)
	return p
}

func (c Content) Blog() *Blog {
	p, _ := c.payload.(*Blog)
	return p
}

func (c Content) Vote() *ContentVote {
	p, _ := c.payload.(*ContentVote)
	return p
}

func (c Content) Pub() *Pub {
	p, _ := c.payload.(*Pub)
	return p
}

func (c Content) Gathering() *Gathering {
	p, _ := c.payload.(*Gathering)
	return p
}

func (c Content) DropContentRequest() *DropContentRequest {
	p, _ := c.payload.(*DropContentRequest)
	return p
}

func (c Content) RoomAlias() *RoomAliasAnnouncement {
	p, _ := c.payload.(*RoomAliasAnnouncement)
	return p
}

// Recipients returns the recps of private posts and votes.
func (c Content) Recipients() Recipients {
	switch p := c.payload.(type) {
	case *Post:
		return p.Recps
	case *ContentVote:
		return p.Recps
	}
	return nil
}

// Thread returns the tangle fields of threaded content, if any.
func (c Content) Thread() (Thread, bool) {
	switch p := c.payload.(type) {
	case *Post:
		return p.Thread, true
	case *ContentVote:
		return p.Thread, true
	case *Blog:
		return p.Thread, true
	case *Gathering:
		return p.Thread, true
	}
	return Thread{}, false
}

// TypeException is the TypeErr text, or "".
func (c Content) TypeException() string {
	if c.TypeErr == nil {
		return ""
	}
	return c.TypeErr.Error()
}

// ContentException is the ContentErr text, or "".
func (c Content) ContentException() string {
	if c.ContentErr == nil {
		return ""
	}
	return c.ContentErr.Error()
}
