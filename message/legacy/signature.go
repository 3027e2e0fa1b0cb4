// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package legacy

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
	refs "github.com/ssbc/go-ssb-refs"
	"golang.org/x/crypto/nacl/auth"

	ssb "github.com/ssbc/go-ssb-model"
)

var (
	jsonLineSeparator   = []byte("\n")
	jsonSignatureSuffix = []byte(`.sig.ed25519"`)
	jsonQuote           = []byte(`"`)
	jsonComma           = []byte(`,`)

	signatureSuffix = []byte(".sig.ed25519")
)

var (
	ErrNoSignature      = errors.New("legacy: signature not found")
	ErrInvalidSignature = errors.New("legacy: invalid signature")
)

// ExtractSignature expects a message as printed by EncodePreserveOrder and
// cuts the signature line out of it. The signature has to be the last field
// of the top-level object.
func ExtractSignature(b []byte) ([]byte, Signature, error) {
	lines := bytes.Split(b, jsonLineSeparator)
	for i := len(lines) - 1; i >= 0; i-- {
		if !bytes.HasSuffix(lines[i], jsonSignatureSuffix) {
			continue
		}
		if i == 0 {
			return nil, nil, errors.New("legacy: signature should be at the end of the message")
		}
		if !bytes.HasSuffix(lines[i-1], jsonComma) {
			return nil, nil, errors.New("legacy: line before the signature has no comma")
		}

		sig, err := signatureFromLine(lines[i])
		if err != nil {
			return nil, nil, err
		}

		lines = append(lines[:i], lines[i+1:]...)
		lines[i-1] = bytes.TrimSuffix(lines[i-1], jsonComma)
		return bytes.Join(lines, jsonLineSeparator), sig, nil
	}
	return nil, nil, ErrNoSignature
}

func signatureFromLine(line []byte) (Signature, error) {
	closing := bytes.LastIndex(line, jsonQuote)
	if closing < 0 {
		return nil, errors.New("legacy: closing quote not found")
	}
	line = line[:closing]

	opening := bytes.LastIndex(line, jsonQuote)
	if opening < 0 {
		return nil, errors.New("legacy: opening quote not found")
	}
	return NewSignatureFromBase64(line[opening+1:])
}

// Signature is a raw ed25519 signature.
// In JSON it is std base64 with the .sig.ed25519 suffix.
type Signature []byte

func NewSignatureFromBase64(input []byte) (Signature, error) {
	if !bytes.HasSuffix(input, signatureSuffix) {
		return nil, errors.New("legacy: unexpected signature suffix")
	}
	b64 := bytes.TrimSuffix(input, signatureSuffix)

	// check the size before decoding, don't allocate for obviously huge input
	gotLen := base64.StdEncoding.DecodedLen(len(b64))
	if gotLen < ed25519.SignatureSize || gotLen > ed25519.SignatureSize+2 {
		return nil, errors.Errorf("legacy: signature data could decode to %d bytes", gotLen)
	}

	decoded := make([]byte, gotLen)
	n, err := base64.StdEncoding.Decode(decoded, b64)
	if err != nil {
		return nil, errors.Wrap(err, "legacy: invalid signature base64")
	}
	if n != ed25519.SignatureSize {
		return nil, errors.Errorf("legacy: signature is %d bytes long, want %d", n, ed25519.SignatureSize)
	}
	return decoded[:n], nil
}

func (s *Signature) UnmarshalJSON(input []byte) error {
	var str string
	if err := json.Unmarshal(input, &str); err != nil {
		return errors.Wrap(err, "legacy: signature is not a string")
	}
	sig, err := NewSignatureFromBase64([]byte(str))
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Signature) String() string {
	return base64.StdEncoding.EncodeToString(s) + string(signatureSuffix)
}

// Verify checks the signature over content against the key of author.
func (s Signature) Verify(content []byte, author refs.FeedRef) error {
	if author.Algo() != refs.RefAlgoFeedSSB1 {
		return errors.Errorf("legacy: can not verify %s feeds", author.Algo())
	}
	if !ed25519.Verify(author.PubKey(), content, s) {
		return ErrInvalidSignature
	}
	return nil
}

// Message is the unsigned value of a classic message, fields in signing order.
type Message struct {
	Previous  *ssb.MessageIdentifier `json:"previous"`
	Author    ssb.FeedIdentifier     `json:"author"`
	Sequence  int64                  `json:"sequence"`
	Timestamp int64                  `json:"timestamp"`
	Hash      string                 `json:"hash"`
	Content   interface{}            `json:"content"`
}

type signedMessage struct {
	Message
	Signature Signature `json:"signature"`
}

// Sign encodes msg, signs it and returns its key and the signed JSON.
// If hmacKey is set, the signature is over the nacl auth tag of the message.
func (msg Message) Sign(priv ed25519.PrivateKey, hmacKey *[32]byte) (ssb.MessageIdentifier, []byte, error) {
	if msg.Hash == "" {
		msg.Hash = "sha256"
	}
	pp, err := jsonAndPreserve(msg)
	if err != nil {
		return "", nil, errors.Wrap(err, "legacy: sign prepare failed")
	}

	signed := signedMessage{
		Message:   msg,
		Signature: ed25519.Sign(priv, maybeHMAC(pp, hmacKey)),
	}
	ppWithSig, err := jsonAndPreserve(signed)
	if err != nil {
		return "", nil, errors.Wrap(err, "legacy: re-encoding signed message failed")
	}

	key, err := messageKey(ppWithSig)
	return key, ppWithSig, err
}

func maybeHMAC(in []byte, hmacKey *[32]byte) []byte {
	if hmacKey == nil {
		return in
	}
	mac := auth.Sum(in, hmacKey)
	return mac[:]
}

func jsonAndPreserve(msg interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, errors.Wrap(err, "legacy: json flattening failed")
	}
	return EncodePreserveOrder(buf.Bytes())
}
