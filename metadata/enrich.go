// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package metadata

import (
	"context"

	"github.com/pkg/errors"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/content"
	"github.com/ssbc/go-ssb-model/message"
)

// AboutSource resolves the current profile of an identity.
// A nil About without an error means the identity is unknown.
type AboutSource interface {
	About(ctx context.Context, id ssb.Identity) (*content.About, error)
}

// AboutIndex is an AboutSource backed by a map.
type AboutIndex map[ssb.Identity]*content.About

var _ AboutSource = AboutIndex(nil)

func (idx AboutIndex) About(_ context.Context, id ssb.Identity) (*content.About, error) {
	return idx[id], nil
}

// AboutsFromMessages folds the about messages that identities published about
// themselves, in the order they appear in msgs. Later fields replace earlier ones.
// Abouts of one identity about another one are ignored.
func AboutsFromMessages(msgs message.Messages) AboutIndex {
	idx := make(AboutIndex)
	for _, msg := range msgs {
		a := msg.Content().About()
		if a == nil || a.About != msg.Author() {
			continue
		}
		if !msg.Content().IsValid() {
			continue
		}
		current, has := idx[a.About]
		if !has {
			current = content.NewAbout(a.About)
		}
		idx[a.About] = current.Merge(a)
	}
	return idx
}

// Enrich computes the metadata of every message in msgs and writes it to store:
// the profile of the author, the private flag and, for thread roots, how
// many replies msgs holds and who wrote them.
// Reply data is recomputed, so enriching the same messages twice is a no-op.
func Enrich(ctx context.Context, store Store, msgs message.Messages, abouts AboutSource) error {
	type thread struct {
		count   int
		authors []ssb.FeedIdentifier
		seen    map[ssb.FeedIdentifier]struct{}
	}
	threads := make(map[ssb.MessageIdentifier]*thread)
	var roots []ssb.MessageIdentifier
	for _, msg := range msgs.Unique() {
		post := msg.Content().Post()
		if post == nil || post.IsRoot() {
			continue
		}
		root := post.RootKey()
		th, has := threads[root]
		if !has {
			th = &thread{seen: make(map[ssb.FeedIdentifier]struct{})}
			threads[root] = th
			roots = append(roots, root)
		}
		th.count++
		if _, has := th.seen[msg.Author()]; !has {
			th.seen[msg.Author()] = struct{}{}
			th.authors = append(th.authors, msg.Author())
		}
	}

	resolve := func(id ssb.Identity) (*content.About, error) {
		a, err := abouts.About(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "metadata: resolving about of %s failed", id)
		}
		return a, nil
	}

	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, err := resolve(msg.Author())
		if err != nil {
			return err
		}
		private := len(msg.Content().Recipients()) > 0
		err = store.Update(msg.Key, func(md *Metadata) error {
			md.Author.About = a
			md.IsPrivate = private
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "metadata: updating %s failed", msg.Key)
		}
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		th := threads[root]
		replies := Replies{Count: th.count}
		for _, author := range th.authors {
			a, err := resolve(author)
			if err != nil {
				return err
			}
			if a == nil {
				a = content.NewAbout(author)
			}
			replies.Abouts = append(replies.Abouts, *a)
		}
		err := store.Update(root, func(md *Metadata) error {
			md.Replies = replies
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "metadata: updating replies of %s failed", root)
		}
	}
	return nil
}
