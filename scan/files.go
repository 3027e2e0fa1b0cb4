// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package scan

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"
	"golang.org/x/sync/errgroup"
)

// ScanFile opens path and scans it.
func (s *Scanner) ScanFile(ctx context.Context, path string, h Handler) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, errors.Wrap(err, "scan: failed to open dump")
	}
	defer f.Close()

	st, err := s.Scan(ctx, f, h)
	if err != nil {
		return st, errors.Wrapf(err, "scan: %s", path)
	}
	return st, nil
}

// ScanFiles scans the files in paths concurrently and merges their stats.
// h has to be safe for concurrent use. The first error cancels the other scans.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string, h Handler) (Stats, error) {
	var (
		mu     sync.Mutex
		merged = Stats{ByType: make(map[string]int)}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			st, err := s.ScanFile(ctx, p, h)

			mu.Lock()
			merged = merged.Merge(st)
			mu.Unlock()

			if err != nil {
				return err
			}
			level.Debug(log.With(s.log, "file", p)).Log("event", "scanned", "records", st.Records, "broken", st.Broken)
			return nil
		})
	}
	err := g.Wait()
	return merged, err
}
