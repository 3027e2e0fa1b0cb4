// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.mindeco.de/log/level"

	"github.com/ssbc/go-ssb-model/message"
	"github.com/ssbc/go-ssb-model/metadata"
	"github.com/ssbc/go-ssb-model/scan"
)

// collect keeps every handed message, in order of the dump
type collect struct {
	mu   sync.Mutex
	msgs message.Messages
}

func (c *collect) HandleMessage(_ context.Context, msg message.Message) error {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
	return nil
}

func readDump(ctx *cli.Context, cmd string) (message.Messages, scan.Stats, error) {
	if ctx.NArg() != 1 {
		return nil, scan.Stats{}, errors.Errorf("%s: need exactly one feed dump", cmd)
	}
	s := getSettings(ctx)
	sc, err := s.newScanner()
	if err != nil {
		return nil, scan.Stats{}, err
	}
	var c collect
	st, err := sc.ScanFile(ctx.Context, ctx.Args().First(), &c)
	return c.msgs, st, err
}

var catCmd = &cli.Command{
	Name:      "cat",
	Usage:     "print one line per message of a feed dump",
	ArgsUsage: "<dump.json|dump.ndjson>",
	Action: func(ctx *cli.Context) error {
		msgs, st, err := readDump(ctx, "cat")
		if err != nil {
			return err
		}

		now := time.Now()
		tw := tabwriter.NewWriter(ctx.App.Writer, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "key\tauthor\tseq\ttype\tvalid\tdate\treceived")
		for _, msg := range msgs {
			c := msg.Content()
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\t%s\t%s\n",
				msg.Key,
				msg.Author(),
				msg.Value.Sequence,
				c.TypeString,
				c.IsValid(),
				humanize.RelTime(msg.UserDate(now), now, "ago", "from now"),
				humanize.Time(msg.ReceivedDate()),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if st.Broken > 0 {
			fmt.Fprintf(ctx.App.Writer, "skipped %s broken records\n", humanize.Comma(int64(st.Broken)))
		}
		return nil
	},
}

var statsCmd = &cli.Command{
	Name:      "stats",
	Usage:     "count records and content types of feed dumps",
	ArgsUsage: "<dump> ...",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() == 0 {
			return errors.New("stats: need at least one feed dump")
		}
		s := getSettings(ctx)
		sc, err := s.newScanner()
		if err != nil {
			return err
		}

		start := time.Now()
		st, err := sc.ScanFiles(ctx.Context, ctx.Args().Slice(), scan.Discard)
		if err != nil {
			return err
		}
		level.Debug(s.log).Log("event", "scan done", "took", time.Since(start))

		w := ctx.App.Writer
		fmt.Fprintf(w, "records:    %s\n", humanize.Comma(int64(st.Records)))
		fmt.Fprintf(w, "decoded:    %s\n", humanize.Comma(int64(st.Decoded)))
		fmt.Fprintf(w, "broken:     %s\n", humanize.Comma(int64(st.Broken)))
		fmt.Fprintf(w, "invalid:    %s\n", humanize.Comma(int64(st.Invalid)))
		if s.verify {
			fmt.Fprintf(w, "unverified: %s\n", humanize.Comma(int64(st.Unverified)))
		}

		types := make([]string, 0, len(st.ByType))
		for t := range st.ByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool {
			ni, nj := st.ByType[types[i]], st.ByType[types[j]]
			if ni != nj {
				return ni > nj
			}
			return types[i] < types[j]
		})
		fmt.Fprintln(w, "types:")
		for _, t := range types {
			fmt.Fprintf(w, "  %-20s %s\n", t, humanize.Comma(int64(st.ByType[t])))
		}
		return nil
	},
}

var checkCmd = &cli.Command{
	Name:      "check",
	Usage:     "validate the hash chains of a feed dump (add --verify to check signatures, too)",
	ArgsUsage: "<dump>",
	Action: func(ctx *cli.Context) error {
		msgs, st, err := readDump(ctx, "check")
		if err != nil {
			return err
		}
		w := ctx.App.Writer

		authors := make(map[string]struct{})
		for _, msg := range msgs {
			authors[string(msg.Author())] = struct{}{}
		}
		fmt.Fprintf(w, "%s messages of %d feeds\n", humanize.Comma(int64(len(msgs))), len(authors))

		var problems []string
		if st.Broken > 0 {
			problems = append(problems, fmt.Sprintf("%d broken records", st.Broken))
		}
		if st.Unverified > 0 {
			problems = append(problems, fmt.Sprintf("%d messages failed verification", st.Unverified))
		}
		if err := message.ValidateChain(msgs); err != nil {
			fmt.Fprintln(w, err)
			problems = append(problems, "broken hash chains")
		}
		if len(problems) > 0 {
			return errors.Errorf("check: %s", strings.Join(problems, ", "))
		}
		fmt.Fprintln(w, "ok")
		return nil
	},
}

var threadsCmd = &cli.Command{
	Name:      "threads",
	Usage:     "list the threads of a feed dump with reply counts and names",
	ArgsUsage: "<dump>",
	Action: func(ctx *cli.Context) (err error) {
		msgs, _, err := readDump(ctx, "threads")
		if err != nil {
			return err
		}
		s := getSettings(ctx)

		var store metadata.Store
		if s.datadir != "" {
			store, err = metadata.OpenBadger(s.datadir)
		} else {
			store = metadata.NewMemoryStore()
		}
		if err != nil {
			return err
		}
		defer func() {
			if cerr := store.Close(); err == nil {
				err = cerr
			}
		}()

		if err := metadata.Enrich(ctx.Context, store, msgs, metadata.AboutsFromMessages(msgs)); err != nil {
			return err
		}

		w := ctx.App.Writer
		now := time.Now()
		for _, root := range msgs.RootPosts().SortedByDateDescending(now) {
			md, _, err := store.Get(root.Key)
			if err != nil {
				return err
			}
			author := string(root.Author())
			if md.Author.About != nil {
				author = md.Author.About.NameOrIdentity()
			}
			var private string
			if md.IsPrivate {
				private = " (private)"
			}
			fmt.Fprintf(w, "%s by %s, %s%s\n", root.Key, author, humanize.RelTime(root.UserDate(now), now, "ago", "from now"), private)
			fmt.Fprintf(w, "  %s\n", firstLine(root.Content().Post().Text))

			if n := md.Replies.Count; n > 0 {
				names := make([]string, len(md.Replies.Abouts))
				for i, a := range md.Replies.Abouts {
					names[i] = a.NameOrIdentity()
				}
				fmt.Fprintf(w, "  %s from %s\n", english.Plural(n, "reply", "replies"), strings.Join(names, ", "))
			}
		}
		return nil
	},
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const max = 72
	if r := []rune(s); len(r) > max {
		s = string(r[:max]) + "…"
	}
	return s
}
