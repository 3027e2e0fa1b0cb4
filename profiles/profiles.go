// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package profiles holds the well-known identities of the networks a client
// can join. The tables are plain data so they can be replaced from config.
package profiles

import (
	"encoding/base64"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// Profile is the set of known pubs and people of one network.
type Profile struct {
	Name   string                  `json:"name"`
	Pubs   map[string]ssb.Identity `json:"pubs"`
	People map[string]ssb.Identity `json:"people"`

	// NetworkKey is the base64 encoded secret-handshake capability.
	NetworkKey string `json:"network_key,omitempty"`
	// HMACKey is the base64 encoded key messages of this network are signed with, if any.
	HMACKey string `json:"hmac_key,omitempty"`
}

// All merges pubs and people. Pubs win if a name is used for both.
func (p Profile) All() map[string]ssb.Identity {
	all := make(map[string]ssb.Identity, len(p.Pubs)+len(p.People))
	for name, id := range p.People {
		all[name] = id
	}
	for name, id := range p.Pubs {
		all[name] = id
	}
	return all
}

// Identities returns the unique identities of All, sorted.
func (p Profile) Identities() []ssb.Identity {
	seen := make(map[ssb.Identity]struct{})
	var ids []ssb.Identity
	for _, id := range p.All() {
		if _, has := seen[id]; has {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p Profile) Contains(id ssb.Identity) bool {
	for _, known := range p.All() {
		if known == id {
			return true
		}
	}
	return false
}

func (p Profile) IsPub(id ssb.Identity) bool {
	for _, pub := range p.Pubs {
		if pub == id {
			return true
		}
	}
	return false
}

// Validate checks that every entry is a feed identifier and that the keys
// have the right length.
func (p Profile) Validate() error {
	var merr *multierror.Error
	check := func(kind string, entries map[string]ssb.Identity) {
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			id := entries[name]
			if id.Sigil() != ssb.SigilFeed || !id.IsValidIdentifier() {
				merr = multierror.Append(merr, errors.Errorf("profiles(%s): %s %q is not a feed: %q", p.Name, kind, name, id))
			}
		}
	}
	check("pub", p.Pubs)
	check("person", p.People)

	if _, err := DecodeKey(p.NetworkKey); err != nil {
		merr = multierror.Append(merr, errors.Wrapf(err, "profiles(%s): network key", p.Name))
	}
	if _, err := DecodeKey(p.HMACKey); err != nil {
		merr = multierror.Append(merr, errors.Wrapf(err, "profiles(%s): hmac key", p.Name))
	}
	return merr.ErrorOrNil()
}

// HMAC returns the decoded HMAC key, nil if the network has none.
func (p Profile) HMAC() (*[32]byte, error) {
	return DecodeKey(p.HMACKey)
}

// DecodeKey decodes a base64 encoded 32 byte key. An empty string is no key.
func DecodeKey(s string) (*[32]byte, error) {
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64")
	}
	if n := len(data); n != 32 {
		return nil, errors.Errorf("key has %d bytes, want 32", n)
	}
	var k [32]byte
	copy(k[:], data)
	return &k, nil
}

// ErrUnknownProfile is returned by Select.
type ErrUnknownProfile struct {
	Name string
}

func (e ErrUnknownProfile) Error() string {
	return "profiles: unknown profile " + e.Name
}

// Registry holds profiles by name.
type Registry map[string]Profile

func (r Registry) Select(name string) (Profile, error) {
	p, has := r[name]
	if !has {
		return Profile{}, ErrUnknownProfile{Name: name}
	}
	return p, nil
}

// Names returns the sorted profile names.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every profile and collects all problems.
func (r Registry) Validate() error {
	var merr *multierror.Error
	for _, name := range r.Names() {
		if err := r[name].Validate(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// Merge returns a copy of r with the profiles of other added. Entries of
// other are added to existing profiles of the same name, replacing
// identities with the same label.
func (r Registry) Merge(other Registry) Registry {
	out := make(Registry, len(r)+len(other))
	for name, p := range r {
		out[name] = p.copy()
	}
	for name, p := range other {
		existing, has := out[name]
		if !has {
			cpy := p.copy()
			cpy.Name = name
			out[name] = cpy
			continue
		}
		for label, id := range p.Pubs {
			existing.Pubs[label] = id
		}
		for label, id := range p.People {
			existing.People[label] = id
		}
		if p.NetworkKey != "" {
			existing.NetworkKey = p.NetworkKey
		}
		if p.HMACKey != "" {
			existing.HMACKey = p.HMACKey
		}
		out[name] = existing
	}
	return out
}

func (p Profile) copy() Profile {
	cpy := p
	cpy.Pubs = make(map[string]ssb.Identity, len(p.Pubs))
	for k, v := range p.Pubs {
		cpy.Pubs[k] = v
	}
	cpy.People = make(map[string]ssb.Identity, len(p.People))
	for k, v := range p.People {
		cpy.People[k] = v
	}
	return cpy
}

// WithoutPubs drops the pubs of every profile in r from ids.
func (r Registry) WithoutPubs(ids []ssb.Identity) []ssb.Identity {
	var out []ssb.Identity
	for _, id := range ids {
		isPub := false
		for _, p := range r {
			if p.IsPub(id) {
				isPub = true
				break
			}
		}
		if !isPub {
			out = append(out, id)
		}
	}
	return out
}
