// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	ssb "github.com/ssbc/go-ssb-model"
)

type RoomAliasAction string

const (
	RoomAliasRegistered RoomAliasAction = "registered"
	RoomAliasRevoked    RoomAliasAction = "revoked"
)

// RoomAliasAnnouncement records that the author claimed (or gave up) an
// alias on a room server.
type RoomAliasAnnouncement struct {
	Type      Type               `json:"type"`
	Action    RoomAliasAction    `json:"action"`
	Alias     string             `json:"alias"`
	AliasURL  string             `json:"aliasURL,omitempty"`
	Room      ssb.FeedIdentifier `json:"room"`
	Signature string             `json:"signature,omitempty"`
}

func (*RoomAliasAnnouncement) ContentType() Type { return TypeRoomAlias }
func (*RoomAliasAnnouncement) isPayload()        {}

func decodeRoomAlias(f fields) (*RoomAliasAnnouncement, error) {
	action, err := f.requireString("action")
	if err != nil {
		return nil, err
	}
	switch a := RoomAliasAction(action); a {
	case RoomAliasRegistered, RoomAliasRevoked:
	default:
		return nil, ssb.ErrMalformedMsg{Reason: "unknown room alias action " + action, Fields: []string{"action"}}
	}
	alias, err := f.requireString("alias")
	if err != nil {
		return nil, err
	}
	room, err := f.requireIdentifier("room")
	if err != nil {
		return nil, err
	}
	return &RoomAliasAnnouncement{
		Type:      TypeRoomAlias,
		Action:    RoomAliasAction(action),
		Alias:     alias,
		AliasURL:  f.str("aliasURL"),
		Room:      room,
		Signature: f.str("signature"),
	}, nil
}

func (raa *RoomAliasAnnouncement) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeRoomAlias); err != nil {
		return err
	}
	dec, err := decodeRoomAlias(f)
	if err != nil {
		return err
	}
	*raa = *dec
	return nil
}
