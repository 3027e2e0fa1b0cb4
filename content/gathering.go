// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

// Gathering announces an event. Title, time and image are set with about
// messages pointing at the gathering's key.
type Gathering struct {
	Type        Type   `json:"type"`
	Description string `json:"description,omitempty"`

	Thread

	Mentions Mentions `json:"mentions,omitempty"`
}

func (*Gathering) ContentType() Type { return TypeGathering }
func (*Gathering) isPayload()        {}

func decodeGathering(f fields) (*Gathering, error) {
	return &Gathering{
		Type:        TypeGathering,
		Description: f.str("description"),
		Thread:      f.thread(),
		Mentions:    f.mentions(),
	}, nil
}

func (g *Gathering) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeGathering); err != nil {
		return err
	}
	dec, _ := decodeGathering(f)
	*g = *dec
	return nil
}
