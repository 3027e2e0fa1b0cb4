// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"regexp"
	"strings"

	ssb "github.com/ssbc/go-ssb-model"
)

// Hashtag is a channel like #ssb. Count and Timestamp are filled by whoever
// aggregates them, a parsed tag has neither.
type Hashtag struct {
	Name      string
	Count     int64
	Timestamp float64
}

// NewHashtag drops any leading # from name.
func NewHashtag(name string) Hashtag {
	return Hashtag{Name: strings.TrimLeft(strings.TrimSpace(name), "#")}
}

func (h Hashtag) String() string { return "#" + h.Name }

func (h Hashtag) Mention() Mention { return Mention{Link: ssb.Identifier(h.String())} }

// Equal compares names with case folding, #SSB and #ssb are the same tag.
func (h Hashtag) Equal(o Hashtag) bool { return fold(h.Name) == fold(o.Name) }

var hashtagRe = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_\-]+)`)

// ParseHashtags extracts the unique tags of a text in order of appearance.
func ParseHashtags(text string) []Hashtag {
	var tags []Hashtag
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		h := Hashtag{Name: m[1]}
		if !containsHashtag(tags, h) {
			tags = append(tags, h)
		}
	}
	return tags
}

func containsHashtag(tags []Hashtag, h Hashtag) bool {
	for _, t := range tags {
		if t.Equal(h) {
			return true
		}
	}
	return false
}
