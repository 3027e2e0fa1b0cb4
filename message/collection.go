// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package message

import (
	"sort"
	"time"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/content"
)

// Messages is an ordered list of messages.
// None of the methods modify the receiver.
type Messages []Message

func (ms Messages) filter(fn func(Message) bool) Messages {
	var out Messages
	for _, m := range ms {
		if fn(m) {
			out = append(out, m)
		}
	}
	return out
}

func (ms Messages) FilterByType(t content.Type) Messages {
	return ms.filter(func(m Message) bool { return m.ContentType() == t })
}

// RootPosts are posts that start a thread.
func (ms Messages) RootPosts() Messages {
	return ms.filter(func(m Message) bool {
		p := m.Value.Content.Post()
		return p != nil && p.IsRoot()
	})
}

// ReplyPosts are posts inside a thread.
func (ms Messages) ReplyPosts() Messages {
	return ms.filter(func(m Message) bool {
		p := m.Value.Content.Post()
		return p != nil && !p.IsRoot()
	})
}

func (ms Messages) ByAuthor(author ssb.FeedIdentifier) Messages {
	return ms.filter(func(m Message) bool { return m.Value.Author == author })
}

func (ms Messages) Keys() []ssb.MessageIdentifier {
	keys := make([]ssb.MessageIdentifier, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}

// Index returns the position of the first message with key, or -1.
func (ms Messages) Index(key ssb.MessageIdentifier) int {
	for i, m := range ms {
		if m.Key == key {
			return i
		}
	}
	return -1
}

func (ms Messages) Contains(key ssb.MessageIdentifier) bool { return ms.Index(key) >= 0 }

// Unique drops repeated keys, keeping the first occurrence.
func (ms Messages) Unique() Messages {
	seen := make(map[ssb.MessageIdentifier]struct{}, len(ms))
	return ms.filter(func(m Message) bool {
		if _, has := seen[m.Key]; has {
			return false
		}
		seen[m.Key] = struct{}{}
		return true
	})
}

// The slicing helpers below return an empty list if key is not in ms.

// PrefixUpTo returns everything before key.
func (ms Messages) PrefixUpTo(key ssb.MessageIdentifier) Messages {
	i := ms.Index(key)
	if i < 0 {
		return Messages{}
	}
	return ms.copyRange(0, i)
}

// PrefixBefore is PrefixUpTo without the message right before key.
func (ms Messages) PrefixBefore(key ssb.MessageIdentifier) Messages {
	i := ms.Index(key)
	if i < 0 {
		return Messages{}
	}
	return ms.copyRange(0, clamp(i-1, len(ms)))
}

// SuffixFrom returns key and everything after it.
func (ms Messages) SuffixFrom(key ssb.MessageIdentifier) Messages {
	i := ms.Index(key)
	if i < 0 {
		return Messages{}
	}
	return ms.copyRange(i, len(ms))
}

// SuffixAfter returns everything after key.
func (ms Messages) SuffixAfter(key ssb.MessageIdentifier) Messages {
	i := ms.Index(key)
	if i < 0 {
		return Messages{}
	}
	return ms.copyRange(clamp(i+1, len(ms)), len(ms))
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func (ms Messages) copyRange(from, to int) Messages {
	out := make(Messages, to-from)
	copy(out, ms[from:to])
	return out
}

// SortedByDateAscending orders by UserDate, oldest first.
// Equal dates keep their order.
func (ms Messages) SortedByDateAscending(now time.Time) Messages {
	return ms.sortedBy(now, func(a, b time.Time) bool { return a.Before(b) })
}

// SortedByDateDescending orders by UserDate, newest first.
func (ms Messages) SortedByDateDescending(now time.Time) Messages {
	return ms.sortedBy(now, func(a, b time.Time) bool { return a.After(b) })
}

func (ms Messages) sortedBy(now time.Time, less func(a, b time.Time) bool) Messages {
	type dated struct {
		msg  Message
		date time.Time
	}
	ds := make([]dated, len(ms))
	for i, m := range ms {
		ds[i] = dated{msg: m, date: m.UserDate(now)}
	}
	sort.SliceStable(ds, func(i, j int) bool { return less(ds[i].date, ds[j].date) })

	out := make(Messages, len(ds))
	for i, d := range ds {
		out[i] = d.msg
	}
	return out
}
