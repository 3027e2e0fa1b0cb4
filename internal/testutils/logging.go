// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package testutils has helpers shared by the tests of this module.
package testutils

import (
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"go.mindeco.de/log"
)

// NewRelativeTimeLogger logs logfmt lines to w (stderr if nil), with the
// time since its creation instead of a timestamp.
func NewRelativeTimeLogger(w io.Writer) log.Logger {
	if w == nil {
		w = os.Stderr
	}

	var rtl relTimeLogger
	rtl.start = time.Now()

	mainLog := log.NewLogfmtLogger(log.NewSyncWriter(w))
	return log.With(mainLog, "t", log.Valuer(rtl.diffTime))
}

type relTimeLogger struct {
	sync.Mutex

	start time.Time
}

func (rtl *relTimeLogger) diffTime() interface{} {
	rtl.Lock()
	defer rtl.Unlock()
	return time.Since(rtl.start)
}

// NewTestLogger writes through t.Log, so output only shows up for failing
// tests or with -v.
func NewTestLogger(t testing.TB) log.Logger {
	return NewRelativeTimeLogger(testWriter{t})
}

type testWriter struct{ t testing.TB }

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}
