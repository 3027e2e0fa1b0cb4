// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package message

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	ssb "github.com/ssbc/go-ssb-model"
)

func TestValidateNext(t *testing.T) {
	r := require.New(t)
	feed := signedFeed(t, 1, 3)
	other := signedFeed(t, 2, 2)

	r.NoError(ValidateNext(Message{}, feed[0]))
	r.NoError(ValidateNext(feed[0], feed[1]))
	r.NoError(ValidateNext(feed[1], feed[2]))

	r.Error(ValidateNext(Message{}, feed[1]), "not a first message")
	r.Error(ValidateNext(feed[0], feed[2]), "gap")
	r.Error(ValidateNext(feed[1], feed[0]), "backwards")
	r.Error(ValidateNext(feed[0], other[1]), "other author")

	forked := feed[2]
	forked.Value.Sequence = 2
	r.Error(ValidateNext(feed[0], forked), "previous points to the wrong message")

	noPrev := feed[1]
	noPrev.Value.Previous = nil
	r.Error(ValidateNext(feed[0], noPrev))

	badStart := feed[0]
	prev := ssb.MessageIdentifier("%AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=.sha256")
	badStart.Value.Previous = &prev
	r.Error(ValidateNext(Message{}, badStart), "first message with previous")
}

func TestValidateChain(t *testing.T) {
	feed := signedFeed(t, 1, 4)
	other := signedFeed(t, 2, 3)

	type tcase struct {
		name   string
		msgs   Messages
		errors int
	}
	var tcases = []tcase{
		{"empty", Messages{}, 0},
		{"one feed", feed, 0},
		{"interleaved", Messages{feed[0], other[0], feed[1], other[1], other[2], feed[2], feed[3]}, 0},
		{"starts later", feed[2:], 0},
		{"gap", Messages{feed[0], feed[1], feed[3]}, 1},
		{"reversed", Messages{feed[1], feed[0]}, 1},
		{"two broken feeds", Messages{feed[0], feed[2], other[0], other[2]}, 2},
		{"duplicate", Messages{feed[0], feed[1], feed[1]}, 1},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateChain(tc.msgs)
			if tc.errors == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var merr *multierror.Error
			require.True(t, errors.As(err, &merr))
			require.Len(t, merr.Errors, tc.errors, "%s", err)
		})
	}
}
