// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package message

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
)

// ValidateNext checks that next can follow current in a feed: same author,
// sequence +1 and previous pointing to current.
// A zero current means next has to be the first message of its feed.
func ValidateNext(current, next Message) error {
	nextSeq := next.Value.Sequence

	if current.Key == "" {
		if nextSeq != 1 {
			return errors.Errorf("message(%s:%d): first message has to have sequence 1", next.Author(), nextSeq)
		}
		if next.Value.Previous != nil {
			return errors.Errorf("message(%s:1): first message has previous %s", next.Author(), *next.Value.Previous)
		}
		return nil
	}
	currSeq := current.Value.Sequence

	if current.Author() != next.Author() {
		return errors.Errorf("message(%s:%d): wrong author: %s", current.Author(), currSeq, next.Author())
	}

	if currSeq+1 != nextSeq {
		return errors.Errorf("message(%s:%d): next sequence is %d", current.Author(), currSeq, nextSeq)
	}

	if next.Value.Previous == nil || *next.Value.Previous != current.Key {
		var prev ssb.MessageIdentifier = "<none>"
		if next.Value.Previous != nil {
			prev = *next.Value.Previous
		}
		return errors.Errorf("message(%s:%d): previous is %s, expected %s", current.Author(), nextSeq, prev, current.Key)
	}
	return nil
}

// ValidateChain runs ValidateNext over the messages of every author in ms,
// in the order they appear. Feeds may start later than sequence 1, the
// first message seen of an author is taken as is, unless its sequence is 1
// or less, then it has to be a valid start of a feed.
// All problems are collected, nil means every feed is linked correctly.
func ValidateChain(ms Messages) error {
	var merr *multierror.Error
	latest := make(map[ssb.FeedIdentifier]Message)
	for _, m := range ms {
		prev, has := latest[m.Author()]
		if !has {
			if m.Value.Sequence <= 1 {
				if err := ValidateNext(Message{}, m); err != nil {
					merr = multierror.Append(merr, err)
				}
			}
			latest[m.Author()] = m
			continue
		}
		if err := ValidateNext(prev, m); err != nil {
			merr = multierror.Append(merr, err)
		}
		latest[m.Author()] = m
	}
	return merr.ErrorOrNil()
}
