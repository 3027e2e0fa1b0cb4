// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	ssb "github.com/ssbc/go-ssb-model"
)

// Blog is a long-form post whose text lives in the blob Blog.
type Blog struct {
	Type      Type               `json:"type"`
	Title     string             `json:"title"`
	Summary   string             `json:"summary,omitempty"`
	Blog      ssb.BlobIdentifier `json:"blog"`
	Thumbnail ssb.BlobIdentifier `json:"thumbnail,omitempty"`

	Thread

	Mentions Mentions `json:"mentions,omitempty"`
}

func (*Blog) ContentType() Type { return TypeBlog }
func (*Blog) isPayload()        {}

func decodeBlog(f fields) (*Blog, error) {
	blob, err := f.requireIdentifier("blog")
	if err != nil {
		return nil, err
	}
	b := Blog{
		Type:     TypeBlog,
		Title:    f.str("title"),
		Summary:  f.str("summary"),
		Blog:     blob,
		Thread:   f.thread(),
		Mentions: f.mentions(),
	}
	if thumb := f.optIdentifier("thumbnail"); thumb != nil {
		b.Thumbnail = *thumb
	}
	return &b, nil
}

func (b *Blog) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeBlog); err != nil {
		return err
	}
	dec, err := decodeBlog(f)
	if err != nil {
		return err
	}
	*b = *dec
	return nil
}
