// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package ssb

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	refs "github.com/ssbc/go-ssb-refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFeed = "@cgZaEEyNixAnq7tMH2CHdusBHV80OwqOSGIcc6Hr6aA=.ed25519"
	testMsg  = "%AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=.sha256"
	testBlob = "&84SSLNv5YdDVTdSzN2V1gzY5ze4lj6tYFkNyT+P28Qs=.sha256"
)

func TestIdentifierParts(t *testing.T) {
	type tcase struct {
		in    Identifier
		sigil Sigil
		id    string
		algo  Algorithm
		valid bool
	}
	var tcases = []tcase{
		{testFeed, SigilFeed, "cgZaEEyNixAnq7tMH2CHdusBHV80OwqOSGIcc6Hr6aA=", AlgoEd25519, true},
		{testMsg, SigilMessage, strings.Repeat("A", 43) + "=", AlgoSHA256, true},
		{testBlob, SigilBlob, "84SSLNv5YdDVTdSzN2V1gzY5ze4lj6tYFkNyT+P28Qs=", AlgoSHA256, true},
		{"@SVigTE9FieHqbHymVX080tR8DCpk5v5LmX4mnxKd7M0=.ggfeed-v1", SigilFeed, "SVigTE9FieHqbHymVX080tR8DCpk5v5LmX4mnxKd7M0=", AlgoGabbyFeed, true},

		{"", SigilUnsupported, "unsupported", AlgoUnsupported, false},
		{"@abc=", SigilFeed, "unsupported", AlgoUnsupported, false},
		{"@a.b.ed25519", SigilFeed, "unsupported", AlgoEd25519, false},
		{"@.ed25519", SigilFeed, "unsupported", AlgoEd25519, false},
		{"@YWJj.ed25519", SigilFeed, "unsupported", AlgoEd25519, false},
		{"+YWJj=.ed25519", SigilUnsupported, "unsupported", AlgoEd25519, false},
		{"@YWJj=.foo", SigilFeed, "YWJj=", AlgoUnsupported, false},
		{"%YWJj=.ggmsg-v1", SigilMessage, "YWJj=", AlgoUnsupported, false},
		{IdentifierNull, SigilUnsupported, "unsupported", AlgoUnsupported, false},
	}
	for i, tc := range tcases {
		a := assert.New(t)
		a.Equal(tc.sigil, tc.in.Sigil(), "case %d: sigil", i)
		a.Equal(tc.id, tc.in.ID(), "case %d: id", i)
		a.Equal(tc.algo, tc.in.Algorithm(), "case %d: algo", i)
		a.Equal(tc.valid, tc.in.IsValidIdentifier(), "case %d: valid", i)
		if !tc.valid {
			a.Nil(tc.in.IDBytes(), "case %d: bytes for invalid", i)
			a.Equal("", tc.in.HexEncodedString(), "case %d: hex for invalid", i)
		}
	}
}

func TestIdentifierBytes(t *testing.T) {
	r := require.New(t)

	r.Equal(bytes.Repeat([]byte{0}, 32), Identifier(testMsg).IDBytes())
	r.Equal(strings.Repeat("00", 32), Identifier(testMsg).HexEncodedString())

	r.Equal("61626364", Identifier("&YWJjZA==.sha256").HexEncodedString())

	// unknown characters are skipped
	r.Equal([]byte("abcd"), Identifier("&YW Jj\nZA==.sha256").IDBytes())

	// valid shape but undecodable payload
	r.Nil(Identifier("&Y=.sha256").IDBytes())
	r.Equal("", Identifier("&Y=.sha256").HexEncodedString())
}

func TestIdentifierHexShape(t *testing.T) {
	isHex := regexp.MustCompile(`^([0-9a-f]{2})+$`)
	for _, id := range []Identifier{testFeed, testMsg, testBlob} {
		h := id.HexEncodedString()
		require.Len(t, h, 2*len(id.IDBytes()), "%s", id)
		require.True(t, isHex.MatchString(h), "%s: %q", id, h)
	}
}

func TestIdentifierStrictRefs(t *testing.T) {
	r := require.New(t)

	fr, err := Identifier(testFeed).FeedRef()
	r.NoError(err)
	r.Equal(refs.RefAlgoFeedSSB1, fr.Algo())
	r.Equal(testFeed, fr.String())

	mr, err := Identifier(testMsg).MessageRef()
	r.NoError(err)
	r.Equal(testMsg, mr.String())

	_, err = Identifier(testBlob).BlobRef()
	r.NoError(err)

	_, err = Identifier(testFeed).MessageRef()
	r.Error(err)
	var eii ErrInvalidIdentifier
	r.ErrorAs(err, &eii)
	r.Equal(SigilMessage, eii.Want)

	_, err = Identifier("@YWJj.ed25519").FeedRef()
	r.Error(err)
}

func TestIdentifierEd25519Key(t *testing.T) {
	a := assert.New(t)
	a.True(Identifier(testFeed).IsValidEd25519Key())

	// y=2 has no matching x on the curve
	notAPoint := "@AgAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=.ed25519"
	a.True(Identifier(notAPoint).IsValidIdentifier())
	a.Len(Identifier(notAPoint).IDBytes(), 32)
	a.False(Identifier(notAPoint).IsValidEd25519Key())

	a.False(Identifier(testBlob).IsValidEd25519Key(), "blobs are no keys")
	a.False(Identifier("@YWJjZA==.ed25519").IsValidEd25519Key(), "short key")
}

func TestNewIdentifiers(t *testing.T) {
	r := require.New(t)

	feed, err := NewFeedIdentifier(Identifier(testFeed).IDBytes())
	r.NoError(err)
	r.Equal(Identifier(testFeed), feed)

	msg, err := NewMessageIdentifier(make([]byte, 32))
	r.NoError(err)
	r.Equal(Identifier(testMsg), msg)

	_, err = NewFeedIdentifier([]byte("short"))
	r.Error(err)
}

func TestSHA256Hash(t *testing.T) {
	h := Identifier(testBlob).SHA256Hash()
	require.Len(t, h, 64)
	require.Equal(t, h, Identifier(testBlob).SHA256Hash())
	require.NotEqual(t, h, Identifier(testMsg).SHA256Hash())
}
