// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"os"

	"github.com/go-kit/kit/metrics"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.mindeco.de/log"
	"go.mindeco.de/log/level"

	config "github.com/ssbc/go-ssb-model/internal/config-reader"
	"github.com/ssbc/go-ssb-model/profiles"
	"github.com/ssbc/go-ssb-model/scan"
)

// settings are the result of config file, environment and flags, in that order.
type settings struct {
	log log.Logger

	registry profiles.Registry
	profile  profiles.Profile

	verify      bool
	hmacKey     *[32]byte
	datadir     string
	concurrency int

	records    metrics.Counter
	metricsSrv *http.Server
}

const settingsKey = "settings"

func getSettings(ctx *cli.Context) *settings {
	return ctx.App.Metadata[settingsKey].(*settings)
}

func initSettings(ctx *cli.Context) error {
	var s settings

	logger := log.NewLogfmtLogger(log.NewSyncWriter(ctx.App.ErrWriter))
	if ctx.Bool("verbose") {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	s.log = log.With(logger, "ts", log.DefaultTimestampUTC)

	conf, _, err := config.Read(ctx.String("config"), level.Debug(s.log))
	if err != nil {
		return err
	}
	mc := conf.Msgcat
	if err := config.ReadEnvironmentVariables(&mc, os.LookupEnv); err != nil {
		return errors.Wrap(err, "environment")
	}

	s.registry = conf.Registry()
	if err := s.registry.Validate(); err != nil {
		return errors.Wrap(err, "invalid profiles")
	}

	profileName := ctx.String("profile")
	if mc.Has("profile") && !ctx.IsSet("profile") {
		profileName = mc.Profile
	}
	s.profile, err = s.registry.Select(profileName)
	if err != nil {
		return err
	}

	s.verify = bool(mc.Verify)
	if ctx.IsSet("verify") {
		s.verify = ctx.Bool("verify")
	}

	hmacStr := s.profile.HMACKey
	if mc.Has("hmac") {
		hmacStr = mc.Hmac
	}
	if ctx.IsSet("hmac") {
		hmacStr = ctx.String("hmac")
	}
	s.hmacKey, err = profiles.DecodeKey(hmacStr)
	if err != nil {
		return errors.Wrap(err, "hmac key")
	}

	s.datadir = mc.DataDir
	if ctx.IsSet("datadir") {
		s.datadir = ctx.String("datadir")
	}

	s.concurrency = int(ctx.Uint("concurrency"))
	if mc.Has("concurrency") && !ctx.IsSet("concurrency") {
		s.concurrency = int(mc.Concurrency)
	}

	metricsAddr := mc.Metrics
	if ctx.IsSet("metrics") {
		metricsAddr = ctx.String("metrics")
	}
	if metricsAddr != "" {
		if err := s.startMetrics(metricsAddr); err != nil {
			return err
		}
	}

	level.Debug(s.log).Log("event", "settings", "profile", s.profile.Name, "verify", s.verify, "hmac", s.hmacKey != nil, "datadir", s.datadir)
	ctx.App.Metadata[settingsKey] = &s
	return nil
}

func closeSettings(ctx *cli.Context) error {
	s, ok := ctx.App.Metadata[settingsKey].(*settings)
	if !ok || s.metricsSrv == nil {
		return nil
	}
	return s.metricsSrv.Close()
}

func (s *settings) newScanner() (*scan.Scanner, error) {
	opts := []scan.Option{
		scan.WithLogger(s.log),
		scan.WithConcurrency(s.concurrency),
	}
	if s.records != nil {
		opts = append(opts, scan.WithRecordCounter(s.records))
	}
	if s.verify {
		opts = append(opts, scan.WithVerification(s.hmacKey))
	}
	return scan.New(opts...)
}

// knownAs returns the label of id in the selected profile, if any.
func (s *settings) knownAs(id string) (string, bool) {
	for name, known := range s.profile.All() {
		if string(known) == id {
			return name, true
		}
	}
	return "", false
}
