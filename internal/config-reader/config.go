// SPDX-FileCopyrightText: 2023 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// Package config reads the TOML configuration of ssb-msgcat.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/komkom/toml"
	"github.com/pkg/errors"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	"github.com/ssbc/go-ssb-model/profiles"
)

type ConfigBool bool

// MsgcatConfig is the [msgcat] section.
type MsgcatConfig struct {
	Profile     string     `json:"profile,omitempty"`
	Metrics     string     `json:"metrics,omitempty"`
	Verify      ConfigBool `json:"verify"`
	Hmac        string     `json:"hmac,omitempty"`
	DataDir     string     `json:"datadir,omitempty"`
	Concurrency uint       `json:"concurrency,omitempty"`

	Presence map[string]interface{} `json:"-"`
}

// Has returns true if the option was set in the file or the environment.
func (config MsgcatConfig) Has(flagname string) bool {
	_, ok := config.Presence[flagname]
	return ok
}

// Config is the whole file. Profiles are merged over the built-in ones.
type Config struct {
	Msgcat   MsgcatConfig                `json:"msgcat"`
	Profiles map[string]profiles.Profile `json:"profiles"`
}

// Registry returns the built-in profiles with the ones of the file merged in.
func (c Config) Registry() profiles.Registry {
	return profiles.Defaults().Merge(profiles.Registry(c.Profiles))
}

// Read reads the file at configPath. A missing file is not an error, the
// boolean says whether one was found.
func Read(configPath string, logger log.Logger) (Config, bool, error) {
	var conf Config
	conf.Msgcat.Presence = make(map[string]interface{})

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			level.Info(logger).Log("event", "read config", "msg", "no config detected", "path", configPath)
			return conf, false, nil
		}
		return conf, false, errors.Wrap(err, "config: failed to read file")
	}

	level.Info(logger).Log("event", "read config", "msg", "config detected", "path", configPath)
	conf, err = Parse(data)
	if err != nil {
		return conf, true, errors.Wrapf(err, "config: %s", configPath)
	}
	if !conf.Msgcat.Has("profile") && len(conf.Profiles) == 0 {
		level.Warn(logger).Log("event", "read config", "msg", "no [msgcat] or [profiles] detected in config file", "path", configPath)
	}
	return conf, true, nil
}

// Parse decodes TOML data.
func Parse(data []byte) (Config, error) {
	var conf Config

	// 1) first we unmarshal into struct for type checks
	decoder := json.NewDecoder(toml.New(bytes.NewBuffer(data)))
	if err := decoder.Decode(&conf); err != nil {
		return conf, eout(err, "decode into struct")
	}

	// 2) then we unmarshal into a map for presence check (to make sure bools are treated correctly)
	presence := make(map[string]interface{})
	decoder = json.NewDecoder(toml.New(bytes.NewBuffer(data)))
	if err := decoder.Decode(&presence); err != nil {
		return conf, eout(err, "decode into presence map")
	}
	conf.Msgcat.Presence = make(map[string]interface{})
	if section, ok := presence["msgcat"].(map[string]interface{}); ok {
		conf.Msgcat.Presence = section
	}

	for name, p := range conf.Profiles {
		if p.Name == "" {
			p.Name = name
			conf.Profiles[name] = p
		}
	}

	if conf.Msgcat.DataDir != "" {
		conf.Msgcat.DataDir = expandPath(conf.Msgcat.DataDir)
	}
	return conf, nil
}

// ReadEnvironmentVariables overlays SSB_MSGCAT_* variables, looked up with lookup.
func ReadEnvironmentVariables(config *MsgcatConfig, lookup func(string) (string, bool)) error {
	if config.Presence == nil {
		config.Presence = make(map[string]interface{})
	}
	if val, ok := lookup("SSB_MSGCAT_PROFILE"); ok && val != "" {
		config.Profile = val
		config.Presence["profile"] = true
	}
	if val, ok := lookup("SSB_MSGCAT_METRICS"); ok && val != "" {
		config.Metrics = val
		config.Presence["metrics"] = true
	}
	if val, ok := lookup("SSB_MSGCAT_HMAC"); ok && val != "" {
		config.Hmac = val
		config.Presence["hmac"] = true
	}
	if val, ok := lookup("SSB_MSGCAT_DATADIR"); ok && val != "" {
		config.DataDir = expandPath(val)
		config.Presence["datadir"] = true
	}
	if val, ok := lookup("SSB_MSGCAT_VERIFY"); ok && val != "" {
		b, err := readEnvironmentBoolean(val)
		if err != nil {
			return eout(err, "SSB_MSGCAT_VERIFY")
		}
		config.Verify = b
		config.Presence["verify"] = true
	}
	if val, ok := lookup("SSB_MSGCAT_CONCURRENCY"); ok && val != "" {
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return eout(err, "SSB_MSGCAT_CONCURRENCY")
		}
		config.Concurrency = uint(n)
		config.Presence["concurrency"] = true
	}
	return nil
}

// ensure the following type of path expansions take place:
// * ~/.ssb				=> /home/<user>/.ssb
// * .ssb					=> /home/<user>/.ssb
// * /stuff/.ssb	=> /stuff/.ssb
func expandPath(p string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}

	if strings.HasPrefix(p, "~") {
		p = strings.Replace(p, "~", home, 1)
	}

	// not relative path, not absolute path =>
	// place relative to home dir "~/<here>"
	if !filepath.IsAbs(p) {
		p = filepath.Join(home, p)
	}

	return p
}

func (booly ConfigBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(booly))
}

func (booly *ConfigBool) UnmarshalJSON(b []byte) error {
	// unmarshal into interface{} first, as a bool can't be unmarshaled into a string
	var v interface{}
	err := json.Unmarshal(b, &v)
	if err != nil {
		return eout(err, "unmarshal config bool")
	}

	// go through a type assertion dance, capturing the two cases:
	// 1. if the config value is a proper boolean, and
	// 2. if the config value is a boolish string (e.g. "true" or "1")
	var temp bool
	if val, ok := v.(bool); ok {
		temp = val
	} else if s, ok := v.(string); ok {
		temp = booleanIsTrue(s)
		if !temp {
			// catch strings that cause a false value, but which aren't boolish
			if s != "false" && s != "0" && s != "no" && s != "off" {
				return errors.Errorf("non-boolean string %q found when unmarshaling boolish values", s)
			}
		}
	}
	*booly = ConfigBool(temp)

	return nil
}

func booleanIsTrue(s string) bool {
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

func readEnvironmentBoolean(s string) (ConfigBool, error) {
	var booly ConfigBool
	quoted, err := json.Marshal(s)
	if err != nil {
		return false, err
	}
	err = json.Unmarshal(quoted, &booly)
	return booly, err
}

func eout(err error, msg string, args ...interface{}) error {
	if err != nil {
		msg = fmt.Sprintf(msg, args...)
		return fmt.Errorf("%s (%w)", msg, err)
	}
	return nil
}
