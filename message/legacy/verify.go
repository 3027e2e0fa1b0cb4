// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package legacy

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/pkg/errors"
	refs "github.com/ssbc/go-ssb-refs"

	ssb "github.com/ssbc/go-ssb-model"
)

// Verify pretty prints raw with EncodePreserveOrder, cuts out the signature
// and checks it against the author of the message.
// If hmacKey is non nil, the signature is over the nacl auth tag of the message
// (networks with a custom hmac key).
// On success it returns the key of the message: the sha256 of the v8 binary
// form of the full pretty printed message.
func Verify(raw []byte, hmacKey *[32]byte) (ssb.MessageIdentifier, error) {
	enc, err := EncodePreserveOrder(raw)
	if err != nil {
		return "", errors.Wrapf(err, "legacy: could not encode message (%q)", shorten(raw))
	}

	var val struct {
		Author   string `json:"author"`
		Sequence int64  `json:"sequence"`
	}
	if err := json.Unmarshal(raw, &val); err != nil {
		return "", errors.Wrapf(err, "legacy: could not decode message (%q)", shorten(raw))
	}
	author, err := refs.ParseFeedRef(val.Author)
	if err != nil {
		return "", errors.Wrapf(err, "legacy: message %d has an invalid author", val.Sequence)
	}

	woSig, sig, err := ExtractSignature(enc)
	if err != nil {
		return "", errors.Wrapf(err, "legacy(%s:%d)", author.String(), val.Sequence)
	}

	if err := sig.Verify(maybeHMAC(woSig, hmacKey), author); err != nil {
		return "", errors.Wrapf(err, "legacy(%s:%d)", author.String(), val.Sequence)
	}

	return messageKey(enc)
}

func messageKey(pretty []byte) (ssb.MessageIdentifier, error) {
	v8warp, err := InternalV8Binary(pretty)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(v8warp)
	return ssb.NewMessageIdentifier(sum[:])
}

func shorten(b []byte) []byte {
	if len(b) > 15 {
		return b[:15]
	}
	return b
}
