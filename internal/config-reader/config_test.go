// SPDX-FileCopyrightText: 2023 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/internal/testutils"
	"github.com/ssbc/go-ssb-model/profiles"
)

const testConfig = `[msgcat]
profile = "home"
metrics = "localhost:6078"
verify = true
concurrency = 3

[profiles.home]
network_key = "1KHLiKZvAvjbY1ziZEHMXawbCEIM6qwjCDm3VYRan/s="

[profiles.home.pubs]
homepub = "@AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=.ed25519"

[profiles.home.people]
me = "@BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBA=.ed25519"

[profiles.ssb.people]
friend = "@CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCA=.ed25519"
`

func TestParseConfig(t *testing.T) {
	r := require.New(t)

	conf, err := Parse([]byte(testConfig))
	r.NoError(err)

	mc := conf.Msgcat
	r.Equal("home", mc.Profile)
	r.Equal("localhost:6078", mc.Metrics)
	r.True(bool(mc.Verify))
	r.EqualValues(3, mc.Concurrency)
	r.True(mc.Has("verify"))
	r.True(mc.Has("profile"))
	r.False(mc.Has("hmac"))
	r.Equal("", mc.Hmac)

	reg := conf.Registry()
	r.NoError(reg.Validate())

	home, err := reg.Select("home")
	r.NoError(err)
	r.Equal("home", home.Name)
	r.True(home.IsPub("@AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=.ed25519"))
	r.Equal(ssb.Identity("@BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBA=.ed25519"), home.People["me"])

	ssbNet, err := reg.Select(profiles.SSB)
	r.NoError(err)
	r.True(ssbNet.Contains("@CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCA=.ed25519"))
	r.Len(ssbNet.Pubs, len(profiles.Defaults()[profiles.SSB].Pubs), "built-in pubs are kept")
}

func TestParseBrokenConfig(t *testing.T) {
	_, err := Parse([]byte("[msgcat]\nverify = \"maybe\"\n"))
	require.Error(t, err)

	_, err = Parse([]byte("[msgcat]\nconcurrency = \"many\"\n"))
	require.Error(t, err)
}

func TestReadConfig(t *testing.T) {
	r := require.New(t)
	logger := testutils.NewTestLogger(t)
	dir := t.TempDir()

	conf, found, err := Read(filepath.Join(dir, "nope.toml"), logger)
	r.NoError(err)
	r.False(found)
	r.NotNil(conf.Msgcat.Presence)
	r.Len(conf.Registry(), 4, "just the built-in profiles")

	configPath := filepath.Join(dir, "config.toml")
	r.NoError(os.WriteFile(configPath, []byte(testConfig), 0600))
	conf, found, err = Read(configPath, logger)
	r.NoError(err)
	r.True(found)
	r.Equal("home", conf.Msgcat.Profile)
	r.Len(conf.Registry(), 5)

	r.NoError(os.WriteFile(configPath, []byte("[profiles.x.pubs]\nbroken = 1\n"), 0600))
	_, found, err = Read(configPath, logger)
	r.Error(err)
	r.True(found)
}

func TestEnvironmentOverlay(t *testing.T) {
	r := require.New(t)

	conf, err := Parse([]byte(testConfig))
	r.NoError(err)

	env := map[string]string{
		"SSB_MSGCAT_PROFILE":     "verse",
		"SSB_MSGCAT_VERIFY":      "off",
		"SSB_MSGCAT_HMAC":        "1KHLiKZvAvjbY1ziZEHMXawbCEIM6qwjCDm3VYRan/s=",
		"SSB_MSGCAT_CONCURRENCY": "8",
		"SSB_MSGCAT_METRICS":     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	mc := conf.Msgcat
	r.NoError(ReadEnvironmentVariables(&mc, lookup))
	r.Equal("verse", mc.Profile)
	r.False(bool(mc.Verify))
	r.True(mc.Has("hmac"))
	r.EqualValues(8, mc.Concurrency)
	r.Equal("localhost:6078", mc.Metrics, "empty variables are ignored")

	env["SSB_MSGCAT_VERIFY"] = "sure"
	r.Error(ReadEnvironmentVariables(&mc, lookup))

	var empty MsgcatConfig
	r.NoError(ReadEnvironmentVariables(&empty, func(string) (string, bool) { return "", false }))
	r.NotNil(empty.Presence)
}

func TestConfigBool(t *testing.T) {
	type tcase struct {
		in   string
		want bool
		err  bool
	}
	var tcases = []tcase{
		{`true`, true, false},
		{`false`, false, false},
		{`"yes"`, true, false},
		{`"on"`, true, false},
		{`"1"`, true, false},
		{`"no"`, false, false},
		{`"0"`, false, false},
		{`"nope"`, false, true},
		{`{`, false, true},
	}
	for _, tc := range tcases {
		var b ConfigBool
		err := json.Unmarshal([]byte(tc.in), &b)
		if tc.err {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, bool(b), tc.in)
	}

	out, err := json.Marshal(ConfigBool(true))
	require.NoError(t, err)
	require.Equal(t, "true", string(out))
}
