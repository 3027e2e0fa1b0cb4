// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package ssb holds the identifier model shared by the content, message and
// address packages.
//
// Identifiers are kept as the strings they arrive as. Validity is a property
// that is checked, never assumed: a malformed identifier is still a value,
// it just reports IsValidIdentifier() == false and yields no bytes.
package ssb

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
	refs "github.com/ssbc/go-ssb-refs"
)

// Identifier is a sigil, a base64 payload and an algorithm suffix,
// like @cgZaEEyNixAnq7tMH2CHdusBHV80OwqOSGIcc6Hr6aA=.ed25519
type Identifier string

type (
	Identity          = Identifier
	FeedIdentifier    = Identifier
	MessageIdentifier = Identifier
	BlobIdentifier    = Identifier
	LinkIdentifier    = MessageIdentifier
)

const (
	IdentifierNull        Identifier = "null"
	IdentifierNotLoggedIn Identifier = "not-logged-in"
	IdentifierUnsupported Identifier = "unsupported"
)

// Sigil is the first character of an identifier and says what it points to.
type Sigil string

const (
	SigilBlob        Sigil = "&"
	SigilFeed        Sigil = "@"
	SigilMessage     Sigil = "%"
	SigilUnsupported Sigil = "unsupported"
)

// Algorithm is the trailing suffix and says how the payload was made.
type Algorithm string

const (
	AlgoSHA256      Algorithm = "sha256"
	AlgoEd25519     Algorithm = "ed25519"
	AlgoGabbyFeed   Algorithm = "ggfeed-v1"
	AlgoGabbyMsg    Algorithm = "ggmsg-v1"
	AlgoUnsupported Algorithm = "unsupported"
)

// ParseAlgorithm maps a raw suffix to an Algorithm.
func ParseAlgorithm(s string) Algorithm {
	switch a := Algorithm(s); a {
	case AlgoSHA256, AlgoEd25519, AlgoGabbyFeed, AlgoGabbyMsg:
		return a
	}
	return AlgoUnsupported
}

func (id Identifier) String() string { return string(id) }

// Sigil returns the kind of the identifier from its first character.
func (id Identifier) Sigil() Sigil {
	s := string(id)
	switch {
	case strings.HasPrefix(s, string(SigilBlob)):
		return SigilBlob
	case strings.HasPrefix(s, string(SigilFeed)):
		return SigilFeed
	case strings.HasPrefix(s, string(SigilMessage)):
		return SigilMessage
	default:
		return SigilUnsupported
	}
}

// ID returns the base64 payload between the sigil and the algorithm suffix,
// or "unsupported" if the identifier is not shaped like one.
func (id Identifier) ID() string {
	components := strings.Split(string(id), ".")
	if len(components) != 2 {
		return string(IdentifierUnsupported)
	}
	component := Identifier(components[0])
	if utf8.RuneCountInString(string(component)) <= 1 {
		return string(IdentifierUnsupported)
	}
	if !strings.HasSuffix(string(component), "=") {
		return string(IdentifierUnsupported)
	}
	if component.Sigil() == SigilUnsupported {
		return string(IdentifierUnsupported)
	}
	// all sigils are a single byte
	return string(component[1:])
}

// Algorithm returns the suffix of the identifier.
// ggmsg-v1 is deliberately not matched here, see DESIGN.md.
func (id Identifier) Algorithm() Algorithm {
	s := string(id)
	switch {
	case strings.HasSuffix(s, string(AlgoSHA256)):
		return AlgoSHA256
	case strings.HasSuffix(s, string(AlgoEd25519)):
		return AlgoEd25519
	case strings.HasSuffix(s, string(AlgoGabbyFeed)):
		return AlgoGabbyFeed
	default:
		return AlgoUnsupported
	}
}

func (id Identifier) IsValidIdentifier() bool {
	return id.Sigil() != SigilUnsupported &&
		id.ID() != string(IdentifierUnsupported) &&
		id.Algorithm() != AlgoUnsupported
}

func (id Identifier) IsBlob() bool { return id.Sigil() == SigilBlob }

// IDBytes decodes the payload. Characters outside of the base64 alphabet are
// skipped. Returns nil for invalid identifiers or undecodable payloads.
func (id Identifier) IDBytes() []byte {
	if !id.IsValidIdentifier() {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(onlyBase64(id.ID()))
	if err != nil {
		return nil
	}
	return data
}

func onlyBase64(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '+', c == '/', c == '=':
		default:
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// HexEncodedString returns the payload bytes as lowercase hex, or "".
func (id Identifier) HexEncodedString() string {
	b := id.IDBytes()
	if b == nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// SHA256Hash is the hex encoded sha256 of the identifier string itself.
// Useful as a filesystem safe name for blobs and cached avatars.
func (id Identifier) SHA256Hash() string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// FeedRef parses the identifier strictly as a feed reference.
func (id Identifier) FeedRef() (refs.FeedRef, error) {
	fr, err := refs.ParseFeedRef(string(id))
	if err != nil {
		return refs.FeedRef{}, ErrInvalidIdentifier{Ident: id, Want: SigilFeed, cause: err}
	}
	return fr, nil
}

// MessageRef parses the identifier strictly as a message reference.
func (id Identifier) MessageRef() (refs.MessageRef, error) {
	mr, err := refs.ParseMessageRef(string(id))
	if err != nil {
		return refs.MessageRef{}, ErrInvalidIdentifier{Ident: id, Want: SigilMessage, cause: err}
	}
	return mr, nil
}

// BlobRef parses the identifier strictly as a blob reference.
func (id Identifier) BlobRef() (refs.BlobRef, error) {
	br, err := refs.ParseBlobRef(string(id))
	if err != nil {
		return refs.BlobRef{}, ErrInvalidIdentifier{Ident: id, Want: SigilBlob, cause: err}
	}
	return br, nil
}

// IsValidEd25519Key checks that a feed identifier carries a public key that
// is an actual point on the curve, not just 32 bytes of base64.
func (id Identifier) IsValidEd25519Key() bool {
	if id.Sigil() != SigilFeed || id.Algorithm() != AlgoEd25519 {
		return false
	}
	b := id.IDBytes()
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// NewFeedIdentifier builds the @....ed25519 form of a raw public key.
func NewFeedIdentifier(pubKey []byte) (FeedIdentifier, error) {
	if len(pubKey) != 32 {
		return IdentifierUnsupported, errors.Errorf("ssb: feed key has %d bytes, want 32", len(pubKey))
	}
	return FeedIdentifier(string(SigilFeed) + base64.StdEncoding.EncodeToString(pubKey) + "." + string(AlgoEd25519)), nil
}

// NewMessageIdentifier builds the %....sha256 form of a message hash.
func NewMessageIdentifier(hash []byte) (MessageIdentifier, error) {
	if len(hash) != sha256.Size {
		return IdentifierUnsupported, errors.Errorf("ssb: message hash has %d bytes, want %d", len(hash), sha256.Size)
	}
	return MessageIdentifier(string(SigilMessage) + base64.StdEncoding.EncodeToString(hash) + "." + string(AlgoSHA256)), nil
}
