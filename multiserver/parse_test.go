// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package multiserver

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	ssb "github.com/ssbc/go-ssb-model"
)

const testKey = "5KDK98cjIQ8bPoBkvp7bCwBXoQMlWpdIbCFyXER8Lbw="

func TestParseAddress(t *testing.T) {
	type tcase struct {
		name  string
		input string
		want  *Address
		err   error
	}

	var cases = []tcase{
		{
			name:  "system pub",
			input: "net:four.planetary.pub:8008~shs:" + testKey,
			want:  &Address{KeyID: testKey, Host: "four.planetary.pub", Port: 8008},
		},
		{
			name:  "diacritics",
			input: "net:âßàÁâãóôþüúðæåïçèõöÿýòäœêëìíøùîûñé:8008~shs:" + testKey,
			want:  &Address{KeyID: testKey, Host: "âßàÁâãóôþüúðæåïçèõöÿýòäœêëìíøùîûñé", Port: 8008},
		},
		{
			name:  "ip host",
			input: "net:192.168.1.1:8008~shs:" + testKey,
			want:  &Address{KeyID: testKey, Host: "192.168.1.1", Port: 8008},
		},
		{
			name:  "larpa",
			input: "net:wx.larpa.net:8008~shs:DTNmX+4SjsgZ7xyDh5xxmNtFqa6pWi5Qtw7cE8aR9TQ=",
			want:  &Address{KeyID: "DTNmX+4SjsgZ7xyDh5xxmNtFqa6pWi5Qtw7cE8aR9TQ=", Host: "wx.larpa.net", Port: 8008},
		},
		{
			name:  "hyphen and high port",
			input: "net:my-pub.example.org:65535~shs:" + testKey,
			want:  &Address{KeyID: testKey, Host: "my-pub.example.org", Port: 65535},
		},

		{name: "empty", input: "", err: ErrNoNetAddr},
		{name: "no shs", input: "net:192.168.1.1:8008", err: ErrNoNetAddr},
		{name: "no port", input: "net:192.168.1.1~shs:" + testKey, err: ErrNoNetAddr},
		{name: "port not numeric", input: "net:192.168.1.1:80a8~shs:" + testKey, err: ErrNoNetAddr},
		{name: "empty host", input: "net::8008~shs:" + testKey, err: ErrNoNetAddr},
		{name: "empty key", input: "net:192.168.1.1:8008~shs:", err: ErrNoNetAddr},
		{name: "ws transport", input: "ws://192.168.1.171:8989~shs:" + testKey, err: ErrNoNetAddr},
		{name: "unix noauth", input: "unix:/home/some1/.ssb/socket~noauth", err: ErrNoNetAddr},
		{name: "port overflow", input: "net:192.168.1.1:184467440737095516160~shs:" + testKey, err: ErrInvalidPort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			addr, err := ParseAddress(tc.input)
			if tc.err == nil {
				r.NoError(err)
				r.Equal(tc.want, addr)
				r.Equal(tc.input, addr.String())
			} else {
				r.Equal(tc.err, errors.Cause(err))
				r.Nil(addr)
			}
		})
	}
}

func TestAddressRoundtrip(t *testing.T) {
	r := require.New(t)
	hosts := []string{"localhost", "10.0.0.1", "four.planetary.pub", "âßàÁ", "a"}
	ports := []uint{0, 1, 8008, 65535, 1 << 31}
	for _, h := range hosts {
		for _, p := range ports {
			a := Address{KeyID: testKey, Host: h, Port: p}
			got, err := ParseAddress(a.String())
			r.NoError(err, "%s", a)
			r.Equal(a, *got)
		}
	}
}

func TestAddressAsMapKey(t *testing.T) {
	seen := make(map[Address]int)
	for i := 0; i < 3; i++ {
		a, err := ParseAddress(fmt.Sprintf("net:10.0.0.%d:8008~shs:%s", i%2, testKey))
		require.NoError(t, err)
		seen[*a]++
	}
	require.Len(t, seen, 2)
}

func TestAddressFeedID(t *testing.T) {
	r := require.New(t)
	a := Address{KeyID: testKey, Host: "192.168.1.1", Port: 8008}
	r.Equal(ssb.Identifier("@"+testKey+".ed25519"), a.FeedID())
	r.True(a.FeedID().IsValidIdentifier())

	na, err := a.NetAddress()
	r.NoError(err)
	r.Equal(8008, na.Addr.Port)
	r.Equal(string(a.FeedID()), na.Ref.String())
}

func TestAddressJSON(t *testing.T) {
	r := require.New(t)

	var pub struct {
		Addr Address `json:"address"`
	}
	err := json.Unmarshal([]byte(`{"address":"net:wx.larpa.net:8008~shs:`+testKey+`"}`), &pub)
	r.NoError(err)
	r.Equal("wx.larpa.net", pub.Addr.Host)

	out, err := json.Marshal(pub)
	r.NoError(err)
	r.JSONEq(`{"address":"net:wx.larpa.net:8008~shs:`+testKey+`"}`, string(out))

	err = json.Unmarshal([]byte(`{"address":"ws://nope"}`), &pub)
	r.Equal(ErrNoNetAddr, errors.Cause(err))
}
