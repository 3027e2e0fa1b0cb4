// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"net"
	"net/http"

	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/pkg/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mindeco.de/log/level"
)

func (s *settings) startMetrics(addr string) error {
	vec := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: "msgcat",
		Subsystem: "scan",
		Name:      "records_total",
		Help:      "feed records seen, by result and content type",
	}, []string{"result", "type"})

	reg := stdprometheus.NewRegistry()
	if err := reg.Register(vec); err != nil {
		return errors.Wrap(err, "metrics: failed to register counter")
	}
	s.records = prometheus.NewCounter(vec)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "metrics: failed to listen")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.metricsSrv = &http.Server{Handler: mux}

	go func() {
		level.Info(s.log).Log("starting", "metrics", "addr", lis.Addr().String())
		err := s.metricsSrv.Serve(lis)
		if err != nil && err != http.ErrServerClosed {
			level.Error(s.log).Log("event", "metrics server failed", "err", err)
		}
	}()
	return nil
}
