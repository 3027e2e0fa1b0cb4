// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// Mention links a post to a feed, a message, a blob or a hashtag.
// Type, Size, Width and Height describe blobs.
type Mention struct {
	Link   ssb.Identifier `json:"link"`
	Name   string         `json:"name,omitempty"`
	Type   string         `json:"type,omitempty"`
	Size   int64          `json:"size,omitempty"`
	Width  int            `json:"width,omitempty"`
	Height int            `json:"height,omitempty"`
}

func (m *Mention) UnmarshalJSON(data []byte) error {
	var link string
	if err := json.Unmarshal(data, &link); err == nil {
		if link == "" {
			return ssb.ErrMalformedMsg{Reason: "empty mention"}
		}
		*m = Mention{Link: ssb.Identifier(link)}
		return nil
	}
	type plain Mention
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(err, "content: mention")
	}
	if p.Link == "" {
		return ssb.ErrMalformedMsg{Reason: "mention without link", Fields: []string{"link"}}
	}
	*m = Mention(p)
	return nil
}

// Markdown renders the mention as a link, [name](link).
func (m Mention) Markdown() string {
	name := m.Name
	if name == "" {
		name = string(m.Link)
	}
	return fmt.Sprintf("[%s](%s)", name, m.Link)
}

func (m Mention) IsHashtag() bool { return strings.HasPrefix(string(m.Link), "#") }

// HashtagMention is the mention form of a tag, with or without leading #.
func HashtagMention(tag string) Mention {
	return NewHashtag(tag).Mention()
}

type Mentions []Mention

func (ms Mentions) has(link ssb.Identifier) bool {
	for _, m := range ms {
		if m.Link == link {
			return true
		}
	}
	return false
}

func (ms Mentions) filter(fn func(Mention) bool) Mentions {
	var out Mentions
	for _, m := range ms {
		if fn(m) {
			out = append(out, m)
		}
	}
	return out
}

func (ms Mentions) Blobs() Mentions {
	return ms.filter(func(m Mention) bool { return m.Link.Sigil() == ssb.SigilBlob })
}

func (ms Mentions) Identities() Mentions {
	return ms.filter(func(m Mention) bool { return m.Link.Sigil() == ssb.SigilFeed })
}

func (ms Mentions) Messages() Mentions {
	return ms.filter(func(m Mention) bool { return m.Link.Sigil() == ssb.SigilMessage })
}

func (ms Mentions) Hashtags() []Hashtag {
	var tags []Hashtag
	for _, m := range ms {
		if !m.IsHashtag() {
			continue
		}
		h := NewHashtag(string(m.Link))
		if h.Name != "" && !containsHashtag(tags, h) {
			tags = append(tags, h)
		}
	}
	return tags
}

// Markdown renders all mentions, one per line.
func (ms Mentions) Markdown() string {
	lines := make([]string, len(ms))
	for i, m := range ms {
		lines[i] = m.Markdown()
	}
	return strings.Join(lines, "\n")
}
