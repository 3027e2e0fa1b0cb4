// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"

	ssb "github.com/ssbc/go-ssb-model"
)

// About sets name, image or description of an identity (or of a gathering).
type About struct {
	Type             Type         `json:"type"`
	About            ssb.Identity `json:"about"`
	Name             *string      `json:"name,omitempty"`
	Description      *string      `json:"description,omitempty"`
	Image            *Image       `json:"image,omitempty"`
	Shortcode        *string      `json:"shortcode,omitempty"`
	PublicWebHosting *bool        `json:"publicWebHosting,omitempty"`
}

func (*About) ContentType() Type { return TypeAbout }
func (*About) isPayload()        {}

// NewAbout starts an about message for id, use the With* helpers to fill it.
func NewAbout(id ssb.Identity) *About {
	return &About{Type: TypeAbout, About: id}
}

func (a *About) WithName(name string) *About {
	cpy := *a
	cpy.Name = &name
	return &cpy
}

func (a *About) WithDescription(descr string) *About {
	cpy := *a
	cpy.Description = &descr
	return &cpy
}

func (a *About) WithImage(blob ssb.BlobIdentifier) *About {
	cpy := *a
	cpy.Image = &Image{Link: blob}
	return &cpy
}

func (a *About) WithPublicWebHosting(v bool) *About {
	cpy := *a
	cpy.PublicWebHosting = &v
	return &cpy
}

func decodeAbout(f fields) (*About, error) {
	about, err := f.requireIdentifier("about")
	if err != nil {
		return nil, err
	}
	a := About{
		Type:  TypeAbout,
		About: about,
	}
	var s string
	if f.opt("name", &s) {
		a.Name = &s
	}
	var d string
	if f.opt("description", &d) {
		a.Description = &d
	}
	var sc string
	if f.opt("shortcode", &sc) {
		a.Shortcode = &sc
	}
	var img Image
	if f.opt("image", &img) && img.Link != "" {
		a.Image = &img
	}
	a.PublicWebHosting = f.optBool("publicWebHosting")
	return &a, nil
}

func (a *About) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeAbout); err != nil {
		return err
	}
	dec, err := decodeAbout(f)
	if err != nil {
		return err
	}
	*a = *dec
	return nil
}

func (a *About) Identity() ssb.Identity { return a.About }

// NameOrIdentity is the first line of the trimmed name, falling back to the identity.
func (a *About) NameOrIdentity() string {
	if a.Name != nil {
		name := strings.TrimSpace(*a.Name)
		if i := strings.IndexByte(name, '\n'); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		if name != "" {
			return name
		}
	}
	return string(a.About)
}

func (a *About) Mention() Mention {
	m := Mention{Link: a.About}
	if a.Name != nil {
		m.Name = *a.Name
	}
	return m
}

// Merge returns a copy of a with every field newer sets.
// It is used to fold the about messages of one identity in feed order.
func (a *About) Merge(newer *About) *About {
	cpy := *a
	if newer == nil {
		return &cpy
	}
	if newer.Name != nil {
		cpy.Name = newer.Name
	}
	if newer.Description != nil {
		cpy.Description = newer.Description
	}
	if newer.Image != nil {
		cpy.Image = newer.Image
	}
	if newer.Shortcode != nil {
		cpy.Shortcode = newer.Shortcode
	}
	if newer.PublicWebHosting != nil {
		cpy.PublicWebHosting = newer.PublicWebHosting
	}
	return &cpy
}

var folder = cases.Fold()

func fold(s string) string { return folder.String(s) }

// Contains matches s case-insensitively against the name, the name without
// spaces and the shortcode.
func (a *About) Contains(s string) bool {
	needle := fold(s)
	if a.Name != nil {
		name := fold(*a.Name)
		if strings.Contains(name, needle) || strings.Contains(strings.ReplaceAll(name, " ", ""), needle) {
			return true
		}
	}
	if a.Shortcode != nil && strings.Contains(fold(*a.Shortcode), needle) {
		return true
	}
	return false
}

// Less orders named abouts before unnamed ones, names case-insensitively and
// unnamed ones by identity.
func (a *About) Less(b *About) bool {
	switch {
	case a.Name != nil && b.Name != nil:
		return fold(*a.Name) < fold(*b.Name)
	case a.Name == nil && b.Name == nil:
		return a.About < b.About
	default:
		return b.Name == nil
	}
}

// Image is a blob reference with optional metadata.
// On the wire it is either the bare blob id or an object with a link.
type Image struct {
	Link   ssb.BlobIdentifier `json:"link"`
	Name   string             `json:"name,omitempty"`
	Size   int64              `json:"size,omitempty"`
	Type   string             `json:"type,omitempty"`
	Width  int                `json:"width,omitempty"`
	Height int                `json:"height,omitempty"`
}

func (i *Image) UnmarshalJSON(data []byte) error {
	var link string
	if err := json.Unmarshal(data, &link); err == nil {
		*i = Image{Link: ssb.BlobIdentifier(link)}
		return nil
	}
	type plain Image
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Image(p)
	return nil
}

// MarshalJSON writes the short form unless there is metadata to keep.
func (i Image) MarshalJSON() ([]byte, error) {
	if i.Name == "" && i.Size == 0 && i.Type == "" && i.Width == 0 && i.Height == 0 {
		return json.Marshal(string(i.Link))
	}
	type plain Image
	return json.Marshal(plain(i))
}
