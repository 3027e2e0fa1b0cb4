// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	ssb "github.com/ssbc/go-ssb-model"
	"github.com/ssbc/go-ssb-model/multiserver"
)

var identCmd = &cli.Command{
	Name:      "ident",
	Usage:     "show the parts of identifiers",
	ArgsUsage: "<@...ed25519|%...sha256|&...sha256> ...",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() == 0 {
			return errors.New("ident: need at least one identifier")
		}
		s := getSettings(ctx)
		w := ctx.App.Writer

		var merr *multierror.Error
		for _, arg := range ctx.Args().Slice() {
			id := ssb.Identifier(arg)
			fmt.Fprintln(w, id)
			fmt.Fprintf(w, "  sigil:     %s\n", id.Sigil())
			fmt.Fprintf(w, "  algorithm: %s\n", id.Algorithm())
			fmt.Fprintf(w, "  id:        %s\n", id.ID())
			fmt.Fprintf(w, "  valid:     %t\n", id.IsValidIdentifier())
			if !id.IsValidIdentifier() {
				merr = multierror.Append(merr, errors.Errorf("ident: %q is not a valid identifier", arg))
				continue
			}
			fmt.Fprintf(w, "  hex:       %s\n", id.HexEncodedString())
			if id.Sigil() == ssb.SigilFeed {
				fmt.Fprintf(w, "  ed25519:   %t\n", id.IsValidEd25519Key())
			}
			if name, ok := s.knownAs(arg); ok {
				fmt.Fprintf(w, "  known as:  %s (%s)\n", name, s.profile.Name)
			}
		}
		return merr.ErrorOrNil()
	},
}

var addrCmd = &cli.Command{
	Name:      "addr",
	Usage:     "parse multiserver addresses",
	ArgsUsage: "<net:host:port~shs:key> ...",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() == 0 {
			return errors.New("addr: need at least one address")
		}
		s := getSettings(ctx)
		w := ctx.App.Writer

		var merr *multierror.Error
		for _, arg := range ctx.Args().Slice() {
			addr, err := multiserver.ParseAddress(arg)
			if err != nil {
				fmt.Fprintf(w, "%s\n  error:    %s\n", arg, err)
				merr = multierror.Append(merr, errors.Wrapf(err, "addr: %q", arg))
				continue
			}
			fmt.Fprintln(w, addr)
			fmt.Fprintf(w, "  host:     %s\n", addr.Host)
			fmt.Fprintf(w, "  port:     %d\n", addr.Port)
			fmt.Fprintf(w, "  feed:     %s\n", addr.FeedID())
			if na, err := addr.NetAddress(); err != nil {
				fmt.Fprintf(w, "  dialable: no (%s)\n", errors.Cause(err))
			} else {
				fmt.Fprintf(w, "  dialable: %s\n", na.Addr.String())
			}
			if s.profile.IsPub(addr.FeedID()) {
				name, _ := s.knownAs(string(addr.FeedID()))
				fmt.Fprintf(w, "  pub:      %s (%s)\n", name, s.profile.Name)
			}
		}
		return merr.ErrorOrNil()
	},
}
