// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package message

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/content"
	"github.com/ssbc/go-ssb-model/message/legacy"
)

// Message is a value together with its key and the time it was received.
type Message struct {
	Key         ssb.MessageIdentifier `json:"key"`
	Value       Value                 `json:"value"`
	Timestamp   float64               `json:"timestamp"` // received, ms since the epoch
	ReceivedSeq *int64                `json:"ReceiveLogSeq,omitempty"`
	HashedKey   *string               `json:"HashedKey,omitempty"`

	// OffChain marks messages that were not received from any feed,
	// like locally generated onboarding content.
	OffChain bool `json:"off_chain,omitempty"`
}

// Decode parses a key/value message. Only problems with the envelope are
// errors, the content is always decoded.
func Decode(data []byte) (Message, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Message{}, &DecodeError{Field: "message", Err: err}
	}
	if e == nil {
		return Message{}, &DecodeError{Field: "message", Err: ErrMissingField}
	}

	var msg Message
	if err := e.field("key", true, &msg.Key); err != nil {
		return Message{}, err
	}
	rawValue, ok := e["value"]
	if !ok {
		return Message{}, &DecodeError{Field: "value", Err: ErrMissingField}
	}
	val, err := DecodeValue(rawValue)
	if err != nil {
		return Message{}, err
	}
	msg.Value = val

	if err := e.field("timestamp", true, &msg.Timestamp); err != nil {
		return Message{}, err
	}
	if err := e.field("ReceiveLogSeq", false, &msg.ReceivedSeq); err != nil {
		return Message{}, err
	}
	if err := e.field("HashedKey", false, &msg.HashedKey); err != nil {
		return Message{}, err
	}
	if err := e.field("off_chain", false, &msg.OffChain); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (m *Message) UnmarshalJSON(data []byte) error {
	dec, err := Decode(data)
	if err != nil {
		return err
	}
	*m = dec
	return nil
}

// Equal compares keys only.
func (m Message) Equal(o Message) bool { return m.Key == o.Key }

func (m Message) Author() ssb.FeedIdentifier { return m.Value.Author }

func (m Message) Content() content.Content { return m.Value.Content }

func (m Message) ContentType() content.Type { return m.Value.Content.Type }

func (m Message) IsOffChain() bool { return m.OffChain }

// ReceivedDate is the local receive time.
func (m Message) ReceivedDate() time.Time { return msToTime(m.Timestamp) }

// ClaimedDate is the time the author put into the message.
func (m Message) ClaimedDate() time.Time { return m.Value.ClaimedDate() }

// UserDate is the claimed date, unless that lies after now. Then the
// receive time is used so messages can't push themselves to the top.
func (m Message) UserDate(now time.Time) time.Time {
	// compared in milliseconds, claims can be far beyond what time.Time holds
	nowMillis := float64(now.UnixNano()) / float64(time.Millisecond)
	if m.Value.Timestamp > nowMillis {
		return m.ReceivedDate()
	}
	return m.ClaimedDate()
}

// ErrKeyMismatch is returned by VerifyKey if the computed key differs.
type ErrKeyMismatch struct {
	Want, Has ssb.MessageIdentifier
}

func (ekm ErrKeyMismatch) Error() string {
	return "message: key mismatch. computed " + string(ekm.Has) + " but message says " + string(ekm.Want)
}

// VerifyKey checks the signature of the raw value and compares the
// computed message key with Key.
func (m Message) VerifyKey(hmacKey *[32]byte) error {
	raw := m.Value.Raw()
	if len(raw) == 0 {
		return errors.New("message: value has no raw bytes to verify")
	}
	key, err := legacy.Verify(raw, hmacKey)
	if err != nil {
		return err
	}
	if key != m.Key {
		return ErrKeyMismatch{Want: m.Key, Has: key}
	}
	return nil
}
