// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	ssb "github.com/ssbc/go-ssb-model"
)

type Post struct {
	Type Type   `json:"type"`
	Text string `json:"text"`

	Thread

	Channel  string                                      `json:"channel,omitempty"`
	Mentions Mentions                                    `json:"mentions,omitempty"`
	Recps    Recipients                                  `json:"recps,omitempty"`
	Reply    map[ssb.MessageIdentifier]ssb.FeedIdentifier `json:"reply,omitempty"`
}

func (*Post) ContentType() Type { return TypePost }
func (*Post) isPayload()        {}

// NewPost creates a root post. Hashtags found in text are added as mentions.
func NewPost(text string, mentions ...Mention) *Post {
	p := &Post{Type: TypePost, Text: text}
	p.Mentions = append(p.Mentions, mentions...)
	for _, h := range ParseHashtags(text) {
		if !p.Mentions.has(h.Mention().Link) {
			p.Mentions = append(p.Mentions, h.Mention())
		}
	}
	return p
}

// NewReply creates a post in the thread of root.
func NewReply(text string, thread Thread, mentions ...Mention) *Post {
	p := NewPost(text, mentions...)
	p.Thread = thread
	return p
}

func decodePost(f fields) (*Post, error) {
	text, err := f.requireString("text")
	if err != nil {
		return nil, err
	}
	p := Post{
		Type:     TypePost,
		Text:     text,
		Thread:   f.thread(),
		Channel:  f.str("channel"),
		Mentions: f.mentions(),
		Recps:    f.recipients(),
	}
	var reply map[ssb.MessageIdentifier]ssb.FeedIdentifier
	if f.opt("reply", &reply) && len(reply) > 0 {
		p.Reply = reply
	}
	return &p, nil
}

func (p *Post) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypePost); err != nil {
		return err
	}
	dec, err := decodePost(f)
	if err != nil {
		return err
	}
	*p = *dec
	return nil
}

// DoesMention reports if id is one of the mention links.
func (p *Post) DoesMention(id ssb.Identity) bool {
	return p.Mentions.has(id)
}

// IsPrivate is true for posts addressed to recipients.
func (p *Post) IsPrivate() bool { return len(p.Recps) > 0 }

func (p *Post) Recipients() []ssb.Identity { return p.Recps.Identities() }

// Hashtags merges the tags mentioned explicitly with those written in the text.
func (p *Post) Hashtags() []Hashtag {
	tags := p.Mentions.Hashtags()
	for _, h := range ParseHashtags(p.Text) {
		if !containsHashtag(tags, h) {
			tags = append(tags, h)
		}
	}
	return tags
}

// Media is a blob attached to a post.
type Media struct {
	Link     ssb.BlobIdentifier
	Name     string
	MIMEType string
}

// AttachedMedia lists the blob mentions. MIMEType is "unknown" if the
// mention did not say.
func (p *Post) AttachedMedia() []Media {
	var media []Media
	for _, m := range p.Mentions.Blobs() {
		mt := m.Type
		if mt == "" {
			mt = "unknown"
		}
		media = append(media, Media{Link: m.Link, Name: m.Name, MIMEType: mt})
	}
	return media
}
