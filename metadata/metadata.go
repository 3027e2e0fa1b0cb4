// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package metadata keeps display annotations of messages next to them,
// keyed by message key, instead of mutating the messages themselves.
package metadata

import (
	"errors"
	"fmt"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/content"
)

// Metadata is what a client computes about a message for display.
type Metadata struct {
	Author    Author  `json:"author"`
	Replies   Replies `json:"replies"`
	IsPrivate bool    `json:"isPrivate"`
}

// Author holds the resolved profile of the author, if one was found.
type Author struct {
	About *content.About `json:"about,omitempty"`
}

// Replies summarizes the thread below a root message.
type Replies struct {
	Count  int             `json:"count"`
	Abouts []content.About `json:"abouts,omitempty"`
}

// Store maps message keys to their metadata.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns false if nothing is stored for key.
	Get(key ssb.MessageIdentifier) (Metadata, bool, error)

	Set(key ssb.MessageIdentifier, md Metadata) error

	// Update calls fn with the stored metadata (or a zero value) and stores
	// the result, unless fn returns an error.
	Update(key ssb.MessageIdentifier, fn func(*Metadata) error) error

	Delete(key ssb.MessageIdentifier) error

	Close() error
}

// ErrorCode is part of this packages Error type
type ErrorCode uint8

const (
	ErrorCodeInternal ErrorCode = iota
	ErrorCodeClosed
	ErrorCodeInvalidKey
)

func (code ErrorCode) String() string {
	switch code {
	case ErrorCodeInternal:
		return "metadata: internal error"
	case ErrorCodeClosed:
		return "metadata: store is closed"
	case ErrorCodeInvalidKey:
		return "metadata: invalid message key"
	default:
		return fmt.Sprintf("metadata: unknown error code %d", code)
	}
}

// Error is returned by the stores of this package
type Error struct {
	Code ErrorCode
	Key  ssb.MessageIdentifier

	Cause error
}

func (err Error) Unwrap() error { return err.Cause }

func (err Error) Error() string {
	if err.Code == ErrorCodeInternal && err.Cause != nil {
		return fmt.Sprintf("metadata(%s): %s", err.Key, err.Cause)
	}
	if err.Key == "" {
		return err.Code.String()
	}
	return fmt.Sprintf("%s (%s)", err.Code, err.Key)
}

// IsClosed returns true if err says the store was already closed.
func IsClosed(err error) bool {
	var mdErr Error
	if !errors.As(err, &mdErr) {
		return false
	}
	return mdErr.Code == ErrorCodeClosed
}

func checkKey(key ssb.MessageIdentifier) error {
	if key == "" {
		return Error{Code: ErrorCodeInvalidKey, Key: key}
	}
	return nil
}
