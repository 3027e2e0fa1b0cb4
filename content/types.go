// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import "fmt"

// Type is the value of the type field of a message content.
type Type string

const (
	TypeAddress            Type = "address"
	TypeAbout              Type = "about"
	TypeContact            Type = "contact"
	TypeDropContentRequest Type = "drop-content-request"
	TypePost               Type = "post"
	TypePub                Type = "pub"
	TypeVote               Type = "vote"
	TypeBlog               Type = "blog"
	TypeGathering          Type = "gathering"
	TypeRoomAlias          Type = "room/alias"

	// TypeUnsupported marks content we could not or do not want to decode
	TypeUnsupported Type = "unsupported"
	// TypeUnknown is private content, an opaque box instead of an object
	TypeUnknown Type = "xxx-encrypted"
)

// InvalidJSON is the TypeString of content that is not even a JSON object.
const InvalidJSON = "Invalid JSON"

var knownTypes = map[string]Type{
	string(TypeAddress):            TypeAddress,
	string(TypeAbout):              TypeAbout,
	string(TypeContact):            TypeContact,
	string(TypeDropContentRequest): TypeDropContentRequest,
	string(TypePost):               TypePost,
	string(TypePub):                TypePub,
	string(TypeVote):               TypeVote,
	string(TypeBlog):               TypeBlog,
	string(TypeGathering):          TypeGathering,
	string(TypeRoomAlias):          TypeRoomAlias,
}

// ErrUnknownType is returned by ParseType for type strings without a decoder.
type ErrUnknownType struct {
	TypeString string
}

func (eut ErrUnknownType) Error() string {
	return fmt.Sprintf("content: unsupported type %q", eut.TypeString)
}

// ParseType maps the raw type string of a message.
// The two marker values unsupported and xxx-encrypted are never accepted
// from the wire.
func ParseType(s string) (Type, error) {
	t, ok := knownTypes[s]
	if !ok {
		return TypeUnsupported, ErrUnknownType{TypeString: s}
	}
	return t, nil
}

func (t Type) String() string { return string(t) }

// IsThreaded is true for types that can carry root/branch tangle fields.
func (t Type) IsThreaded() bool {
	switch t {
	case TypePost, TypeVote, TypeBlog, TypeGathering:
		return true
	}
	return false
}
