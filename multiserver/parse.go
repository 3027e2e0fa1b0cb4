// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package multiserver parses the net~shs subset of multiserver addresses,
// as announced by pubs and rooms: net:<host>:<port>~shs:<key>
package multiserver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	msaddr "github.com/ssbc/go-ssb-multiserver"

	ssb "github.com/ssbc/go-ssb-model"
)

var (
	ErrNoNetAddr   = errors.New("multiserver: no net~shs combination")
	ErrInvalidPort = errors.New("multiserver: port is not an unsigned integer")
)

// hosts are ascii names and ips plus latin-1 letters and the œ ligature
var netSHS = regexp.MustCompile(`^net:([a-zA-Z0-9.\-À-ÖØ-öø-ÿŒœ]+):([0-9]+)~shs:(.+)$`)

// Address is a single net~shs entry.
// The zero value is not a usable address.
type Address struct {
	KeyID string // the base64 public key without sigil and suffix
	Host  string
	Port  uint
}

// ParseAddress matches the whole input against the net~shs pattern.
// It never returns a partial address.
func ParseAddress(input string) (*Address, error) {
	matches := netSHS.FindStringSubmatch(input)
	if matches == nil {
		return nil, ErrNoNetAddr
	}

	port, err := strconv.ParseUint(matches[2], 10, strconv.IntSize)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPort, "multiserver: %s", err)
	}

	return &Address{
		KeyID: matches[3],
		Host:  matches[1],
		Port:  uint(port),
	}, nil
}

// String returns the canonical net:<host>:<port>~shs:<key> form.
func (a Address) String() string {
	return fmt.Sprintf("net:%s:%d~shs:%s", a.Host, a.Port, a.KeyID)
}

// FeedID is the identity of the peer behind the address.
func (a Address) FeedID() ssb.FeedIdentifier {
	return ssb.FeedIdentifier(string(ssb.SigilFeed) + a.KeyID + "." + string(ssb.AlgoEd25519))
}

// NetAddress converts to the dialable form used by the network layer.
// That one is stricter: the host has to be an IP and the key 32 bytes.
func (a Address) NetAddress() (*msaddr.NetAddress, error) {
	na, err := msaddr.ParseNetAddress([]byte(a.String()))
	if err != nil {
		return nil, errors.Wrapf(err, "multiserver: %s is not dialable", a.Host)
	}
	return na, nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "multiserver: address is not a string")
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
