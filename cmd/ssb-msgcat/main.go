// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// ssb-msgcat inspects ssb identifiers, multiserver addresses and feed dumps.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ssbc/go-ssb-model/profiles"
)

// Version and Build are set by ldflags
var (
	Version = "snapshot"
	Build   = ""
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".ssb-msgcat", "config.toml")
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ssb-msgcat",
		Usage:   "inspect ssb identifiers, multiserver addresses and feed dumps",
		Version: "alpha1",

		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: defaultConfigPath(), Usage: "TOML config file, a missing file is fine"},
			&cli.StringFlag{Name: "profile", Value: profiles.SSB, Usage: "network profile to use for known identities and keys"},
			&cli.StringFlag{Name: "metrics", Usage: "serve prometheus metrics on this address (like localhost:6078)"},
			&cli.BoolFlag{Name: "verify", Usage: "check signatures and message keys of feed dumps"},
			&cli.StringFlag{Name: "hmac", Usage: "base64 HMAC key messages are signed with, defaults to the one of the profile"},
			&cli.StringFlag{Name: "datadir", Usage: "keep thread metadata in a badger database in this directory"},
			&cli.UintFlag{Name: "concurrency", Value: 4, Usage: "how many dumps to read at once"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"vv"}, Usage: "log debug messages"},
		},

		Metadata: make(map[string]interface{}),

		Before: initSettings,
		After:  closeSettings,
		Commands: []*cli.Command{
			identCmd,
			addrCmd,
			catCmd,
			statsCmd,
			checkCmd,
			threadsCmd,
			profilesCmd,
		},
	}
}

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("%s (rev: %s, built: %s)\n", c.App.Version, Version, Build)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
