// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package metadata

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/content"
	"github.com/ssbc/go-ssb-model/message"
)

const carol ssb.FeedIdentifier = "@CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCA=.ed25519"

func testMsg(key ssb.MessageIdentifier, author ssb.FeedIdentifier, body string) message.Message {
	return message.Message{
		Key: key,
		Value: message.Value{
			Author:  author,
			Content: content.Decode([]byte(body)),
		},
	}
}

func TestAboutsFromMessages(t *testing.T) {
	a := assert.New(t)

	msgs := message.Messages{
		testMsg("%1", alice, `{"type":"about","about":"`+string(alice)+`","name":"al"}`),
		testMsg("%2", alice, `{"type":"about","about":"`+string(alice)+`","description":"hi there"}`),
		testMsg("%3", bob, `{"type":"about","about":"`+string(alice)+`","name":"not your name"}`),
		testMsg("%4", alice, `{"type":"about","about":"`+string(alice)+`","name":"alice"}`),
		testMsg("%5", bob, `{"type":"post","text":"not an about"}`),
		testMsg("%6", bob, `{"type":"about","name":"missing about field"}`),
	}

	idx := AboutsFromMessages(msgs)
	a.Len(idx, 1)

	about, err := idx.About(context.Background(), alice)
	a.NoError(err)
	a.Equal("alice", about.NameOrIdentity())
	a.Equal("hi there", *about.Description)

	none, err := idx.About(context.Background(), bob)
	a.NoError(err)
	a.Nil(none)
}

func TestEnrich(t *testing.T) {
	ctx := context.Background()

	const (
		root  ssb.MessageIdentifier = "%root"
		other ssb.MessageIdentifier = "%elsewhere"
	)
	msgs := message.Messages{
		testMsg("%about", alice, `{"type":"about","about":"`+string(alice)+`","name":"alice"}`),
		testMsg(root, alice, `{"type":"post","text":"a thread"}`),
		testMsg("%r1", bob, `{"type":"post","text":"reply one","root":"%root"}`),
		testMsg("%r2", carol, `{"type":"post","text":"reply two","root":"%root"}`),
		testMsg("%r3", bob, `{"type":"post","text":"reply three","root":"%root"}`),
		testMsg("%r4", bob, `{"type":"post","text":"root is not here","root":"%elsewhere"}`),
		testMsg("%like", carol, `{"type":"vote","vote":{"link":"%root","value":1},"root":"%root"}`),
		testMsg("%dm", alice, `{"type":"post","text":"psst","recps":["`+string(alice)+`","`+string(bob)+`"]}`),
	}
	abouts := AboutsFromMessages(msgs)

	for name, mk := range stores() {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)
			s := mk(t)
			defer s.Close()

			r.NoError(Enrich(ctx, s, msgs, abouts))
			// a second run doesn't double the counts
			r.NoError(Enrich(ctx, s, msgs, abouts))

			md, has, err := s.Get(root)
			r.NoError(err)
			r.True(has)
			r.Equal("alice", md.Author.About.NameOrIdentity())
			r.False(md.IsPrivate)
			r.Equal(3, md.Replies.Count)
			r.Len(md.Replies.Abouts, 2)
			r.Equal(bob, md.Replies.Abouts[0].Identity())
			r.Equal(string(bob), md.Replies.Abouts[0].NameOrIdentity(), "bob has no about")
			r.Equal(carol, md.Replies.Abouts[1].Identity())

			md, has, err = s.Get(other)
			r.NoError(err)
			r.True(has, "roots outside of msgs get their counts")
			r.Equal(1, md.Replies.Count)
			r.Nil(md.Author.About)

			md, _, err = s.Get("%r1")
			r.NoError(err)
			r.Nil(md.Author.About)
			r.Equal(0, md.Replies.Count)

			md, _, err = s.Get("%dm")
			r.NoError(err)
			r.True(md.IsPrivate)
		})
	}
}

type brokenSource struct{}

func (brokenSource) About(context.Context, ssb.Identity) (*content.About, error) {
	return nil, errors.New("bot offline")
}

func TestEnrichErrors(t *testing.T) {
	r := require.New(t)
	msgs := message.Messages{testMsg("%1", alice, `{"type":"post","text":"hi"}`)}

	s := NewMemoryStore()
	defer s.Close()

	err := Enrich(context.Background(), s, msgs, brokenSource{})
	r.Error(err)
	r.Contains(err.Error(), "bot offline")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Enrich(ctx, s, msgs, AboutIndex{})
	r.True(errors.Is(err, context.Canceled))

	closed := NewMemoryStore()
	r.NoError(closed.Close())
	err = Enrich(context.Background(), closed, msgs, AboutIndex{})
	r.True(IsClosed(err))
}
