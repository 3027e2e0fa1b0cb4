// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import (
	"math"

	ssb "github.com/ssbc/go-ssb-model"
)

// Vote is the inner object of a vote message, a like when Value is 1.
type Vote struct {
	Link       ssb.LinkIdentifier `json:"link"`
	Value      int                `json:"value"`
	Expression string             `json:"expression,omitempty"`
}

const ExpressionLike = "Like"

func (v *Vote) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	link, err := f.requireIdentifier("link")
	if err != nil {
		return err
	}
	*v = Vote{Link: link, Expression: f.str("expression")}
	var val float64
	if f.opt("value", &val) {
		v.Value = voteValue(val)
	}
	return nil
}

// voteValue truncates to an int, values beyond the int32 range are clamped
func voteValue(val float64) int {
	switch {
	case val > math.MaxInt32:
		return math.MaxInt32
	case val < math.MinInt32:
		return math.MinInt32
	}
	return int(val)
}

func (v Vote) IsLike() bool { return v.Value > 0 }

type ContentVote struct {
	Type Type `json:"type"`
	Vote Vote `json:"vote"`

	Thread

	Recps Recipients `json:"recps,omitempty"`
}

func (*ContentVote) ContentType() Type { return TypeVote }
func (*ContentVote) isPayload()        {}

// NewVote likes (value 1) or unlikes (value 0) link.
// Votes on a thread member should carry the thread of that message.
func NewVote(link ssb.LinkIdentifier, value int, thread Thread) *ContentVote {
	v := &ContentVote{
		Type:   TypeVote,
		Vote:   Vote{Link: link, Value: value},
		Thread: thread,
	}
	if value > 0 {
		v.Vote.Expression = ExpressionLike
	}
	return v
}

func decodeContentVote(f fields) (*ContentVote, error) {
	var vote Vote
	if err := f.require("vote", &vote); err != nil {
		return nil, err
	}
	return &ContentVote{
		Type:   TypeVote,
		Vote:   vote,
		Thread: f.thread(),
		Recps:  f.recipients(),
	}, nil
}

func (cv *ContentVote) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	if err := f.checkType(TypeVote); err != nil {
		return err
	}
	dec, err := decodeContentVote(f)
	if err != nil {
		return err
	}
	*cv = *dec
	return nil
}
