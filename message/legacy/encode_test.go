// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package legacy

import (
	"fmt"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"
)

func TestEncodePreserveOrder(t *testing.T) {
	type tcase struct {
		in, want string
	}
	var tcases = []tcase{
		{`{}`, `{}`},
		{`{"z":true,"a":false}`, "{\n  \"z\": true,\n  \"a\": false\n}"},
		{`{"n":1.50,"big":1514517067954,"neg":-3e2}`, "{\n  \"n\": 1.50,\n  \"big\": 1514517067954,\n  \"neg\": -3e2\n}"},
		{`{"a":1,"b":[],"c":{},"d":[1,{"e":null}]}`, `{
  "a": 1,
  "b": [],
  "c": {},
  "d": [
    1,
    {
      "e": null
    }
  ]
}`},
		{`{"mentions":[[null,false]]}`, `{
  "mentions": [
    [
      null,
      false
    ]
  ]
}`},
		{`{"s":"x\"y\n\t\u0001\u001cé<&>\\"}`, `{
  "s": "x\"y\n\t\u0001\u001cé<&>\\"
}`},
		{`{"k\"ey":"v"}`, `{
  "k\"ey": "v"
}`},
		{"\n  {\"spaced\" :\t\"out\"}\n", "{\n  \"spaced\": \"out\"\n}"},
	}
	for i, tc := range tcases {
		got, err := EncodePreserveOrder([]byte(tc.in))
		require.NoError(t, err, "case %d", i)
		if d := diff.Diff(tc.want, string(got)); d != "" {
			t.Errorf("case %d:\n%s", i, d)
		}
	}
}

func TestEncodePreserveOrderErrors(t *testing.T) {
	for i, in := range []string{
		``,
		`[1]`,
		`"string"`,
		`{"a":}`,
		`{"a":1`,
		`{"a":1}{"b":2}`,
	} {
		_, err := EncodePreserveOrder([]byte(in))
		require.Error(t, err, "case %d: %q", i, in)
	}
}

func TestInternalV8Binary(t *testing.T) {
	r := require.New(t)
	type tcase struct {
		in, want string
	}
	var tcases = []tcase{
		{"foo", "666f6f"},
		{"ü", "fc"},
		{"Fabián", "46616269e16e"},
		{"“SaneScript”", "1c53616e655363726970741d"},
		{"€", "ac"},
		{"😀", "3d00"},
		{"", ""},
	}
	for _, tc := range tcases {
		got, err := InternalV8Binary([]byte(tc.in))
		r.NoError(err)
		r.Equal(tc.want, fmt.Sprintf("%x", got), "%q", tc.in)
	}
}
