// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package scan reads feed dumps record by record.
//
// A dump is either a JSON array of key/value messages or one message per
// line. Records that are not messages are logged and counted, they never
// end a scan. Only a broken array (which can't be resynchronized) or an
// error of the handler stops it early.
package scan

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/go-kit/kit/metrics"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/ssbc/go-ssb-model/message"
)

// Handler is called for every decoded (and, if enabled, verified) message.
// Returning an error stops the scan.
type Handler interface {
	HandleMessage(ctx context.Context, msg message.Message) error
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ctx context.Context, msg message.Message) error

func (hf HandlerFunc) HandleMessage(ctx context.Context, msg message.Message) error {
	return hf(ctx, msg)
}

// Discard is a Handler that does nothing, useful if only the stats are of interest.
var Discard Handler = HandlerFunc(func(context.Context, message.Message) error { return nil })

// Stats counts what a scan has seen.
type Stats struct {
	Records    int            `json:"records"`
	Decoded    int            `json:"decoded"`
	Broken     int            `json:"broken"`     // no message envelope
	Invalid    int            `json:"invalid"`    // envelope ok, content not usable
	Unverified int            `json:"unverified"` // failed the key check
	ByType     map[string]int `json:"by_type"`
}

// Merge adds the counts of o to a copy of s.
func (s Stats) Merge(o Stats) Stats {
	out := Stats{
		Records:    s.Records + o.Records,
		Decoded:    s.Decoded + o.Decoded,
		Broken:     s.Broken + o.Broken,
		Invalid:    s.Invalid + o.Invalid,
		Unverified: s.Unverified + o.Unverified,
		ByType:     make(map[string]int, len(s.ByType)),
	}
	for t, n := range s.ByType {
		out.ByType[t] = n
	}
	for t, n := range o.ByType {
		out.ByType[t] += n
	}
	return out
}

// Result labels of the record counter
const (
	ResultDecoded    = "decoded"
	ResultBroken     = "broken"
	ResultInvalid    = "invalid"
	ResultUnverified = "unverified"
)

// Scanner holds the settings of a scan. It can be used for several scans,
// also concurrently.
type Scanner struct {
	log     log.Logger
	records metrics.Counter

	verify  bool
	hmacKey *[32]byte

	concurrency int
}

type Option func(*Scanner) error

func WithLogger(l log.Logger) Option {
	return func(s *Scanner) error {
		s.log = l
		return nil
	}
}

// WithRecordCounter counts records by "result" and "type" labels.
func WithRecordCounter(c metrics.Counter) Option {
	return func(s *Scanner) error {
		s.records = c
		return nil
	}
}

// WithVerification turns on signature and key checks, with an optional
// HMAC key for networks that sign messages with one.
func WithVerification(hmacKey *[32]byte) Option {
	return func(s *Scanner) error {
		s.verify = true
		s.hmacKey = hmacKey
		return nil
	}
}

// WithConcurrency limits how many files ScanFiles reads at once.
func WithConcurrency(n int) Option {
	return func(s *Scanner) error {
		if n < 1 {
			return errors.Errorf("scan: concurrency needs to be at least 1, got %d", n)
		}
		s.concurrency = n
		return nil
	}
}

func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{concurrency: 4}
	for i, o := range opts {
		if err := o(s); err != nil {
			return nil, errors.Wrapf(err, "scan: option #%d failed", i)
		}
	}
	if s.log == nil {
		s.log = log.NewNopLogger()
	}
	return s, nil
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scan reads all records of r and passes the messages to h.
// The stats are valid even if an error is returned.
func (s *Scanner) Scan(ctx context.Context, r io.Reader, h Handler) (Stats, error) {
	st := Stats{ByType: make(map[string]int)}

	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return st, nil
	}
	if err != nil {
		return st, errors.Wrap(err, "scan: failed to read start of input")
	}

	if first == '[' {
		err = s.scanArray(ctx, br, h, &st)
	} else {
		err = s.scanLines(ctx, br, h, &st)
	}
	return st, err
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func (s *Scanner) scanArray(ctx context.Context, r io.Reader, h Handler, st *Stats) error {
	iter := jsoniter.Parse(json, r, 64*1024)
	for iter.ReadArray() {
		raw := iter.SkipAndReturnBytes()
		if iter.Error != nil {
			break
		}
		if err := s.record(ctx, raw, h, st); err != nil {
			return err
		}
	}
	// io.EOF here means the closing bracket is missing
	if iter.Error != nil {
		level.Error(s.log).Log("event", "array broken", "records", st.Records, "err", iter.Error)
		return errors.Wrapf(iter.Error, "scan: array broken after %d records", st.Records)
	}
	return nil
}

func (s *Scanner) scanLines(ctx context.Context, br *bufio.Reader, h Handler, st *Stats) error {
	for {
		line, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if herr := s.record(ctx, line, h, st); herr != nil {
				return herr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "scan: failed to read line")
		}
	}
}

func (s *Scanner) count(result, typ string) {
	if s.records == nil {
		return
	}
	s.records.With("result", result, "type", typ).Add(1)
}

// record handles one raw record. Only context and handler errors are returned.
func (s *Scanner) record(ctx context.Context, raw []byte, h Handler, st *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.Records++

	msg, err := message.Decode(raw)
	if err != nil {
		st.Broken++
		s.count(ResultBroken, "")
		level.Warn(s.log).Log("event", "broken record", "record", st.Records, "err", err)
		return nil
	}

	c := msg.Content()
	typ := c.TypeString
	if typ == "" {
		typ = string(c.Type)
	}
	st.ByType[typ]++

	if s.verify {
		if err := msg.VerifyKey(s.hmacKey); err != nil {
			st.Unverified++
			s.count(ResultUnverified, typ)
			level.Warn(s.log).Log("event", "unverified message", "key", msg.Key, "author", msg.Author(), "seq", msg.Value.Sequence, "err", err)
			return nil
		}
	}

	st.Decoded++
	if c.IsValid() {
		s.count(ResultDecoded, typ)
	} else {
		st.Invalid++
		s.count(ResultInvalid, typ)
		if !c.IsEncrypted() {
			level.Debug(s.log).Log("event", "invalid content", "key", msg.Key, "type", typ, "type-err", c.TypeException(), "content-err", c.ContentException())
		}
	}

	if err := h.HandleMessage(ctx, msg); err != nil {
		return errors.Wrapf(err, "scan: handler failed on %s", msg.Key)
	}
	return nil
}
