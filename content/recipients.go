// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"encoding/json"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// Recipient is one entry of recps. Some clients write plain identities,
// others objects with a link and a display name.
type Recipient struct {
	Link ssb.Identity
	Name string
}

func (r *Recipient) UnmarshalJSON(data []byte) error {
	var link string
	if err := json.Unmarshal(data, &link); err == nil {
		*r = Recipient{Link: ssb.Identity(link)}
		return nil
	}
	var obj struct {
		Link string `json:"link"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "content: recipient is neither string nor object")
	}
	if obj.Link == "" {
		return ssb.ErrMalformedMsg{Reason: "recipient without link", Fields: []string{"link"}}
	}
	*r = Recipient{Link: ssb.Identity(obj.Link), Name: obj.Name}
	return nil
}

// MarshalJSON always writes the plain identity.
func (r Recipient) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r.Link))
}

type Recipients []Recipient

// NewRecipients builds the plain form for publishing.
func NewRecipients(ids ...ssb.Identity) Recipients {
	rs := make(Recipients, len(ids))
	for i, id := range ids {
		rs[i] = Recipient{Link: id}
	}
	return rs
}

func (rs Recipients) Identities() []ssb.Identity {
	if len(rs) == 0 {
		return nil
	}
	ids := make([]ssb.Identity, len(rs))
	for i, r := range rs {
		ids[i] = r.Link
	}
	return ids
}
