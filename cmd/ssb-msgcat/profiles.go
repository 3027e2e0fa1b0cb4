// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
)

var profilesCmd = &cli.Command{
	Name:  "profiles",
	Usage: "list the known identities of the selected profile",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "names", Usage: "only list the names of all profiles"},
	},
	Action: func(ctx *cli.Context) error {
		s := getSettings(ctx)
		w := ctx.App.Writer

		if ctx.Bool("names") {
			for _, name := range s.registry.Names() {
				fmt.Fprintln(w, name)
			}
			return nil
		}

		p := s.profile
		fmt.Fprintf(w, "profile %s\n", p.Name)
		if p.NetworkKey != "" {
			fmt.Fprintf(w, "  network key: %s\n", p.NetworkKey)
		}
		if p.HMACKey != "" {
			fmt.Fprintln(w, "  hmac: yes")
		}

		all := p.All()
		labels := make([]string, 0, len(all))
		for label := range all {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			return strings.ToLower(labels[i]) < strings.ToLower(labels[j])
		})
		for _, label := range labels {
			kind := "person"
			if _, isPub := p.Pubs[label]; isPub {
				kind = "pub"
			}
			fmt.Fprintf(w, "  %-6s %-16s %s\n", kind, label, all[label])
		}
		return nil
	},
}
