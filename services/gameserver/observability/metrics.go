// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the game service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "doubletalk"

// GameMetrics holds the Prometheus metrics for round resolution.
//
// All operations are thread-safe via Prometheus's internal locking.
type GameMetrics struct {
	// RoundsTotal counts resolved rounds by outcome.
	// Labels: status (ok, invalid_input, moderation_rejected,
	// judgment_unavailable, error)
	RoundsTotal *prometheus.CounterVec

	// RoundLatencySeconds measures end-to-end round resolution time,
	// judge retries included.
	RoundLatencySeconds prometheus.Histogram

	// ContinuationFallbacksTotal counts canned-text substitutions.
	// Labels: slot (A, B, C)
	ContinuationFallbacksTotal *prometheus.CounterVec

	// PointsAwarded observes per-round points on successful rounds.
	PointsAwarded prometheus.Histogram

	// GameOversTotal counts game-ending rounds by triggering slot.
	// Labels: slot (A, B, C)
	GameOversTotal *prometheus.CounterVec
}

// NewGameMetrics registers the game metrics on the given registerer. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func NewGameMetrics(reg prometheus.Registerer) *GameMetrics {
	factory := promauto.With(reg)
	return &GameMetrics{
		RoundsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rounds_total",
			Help:      "Resolved rounds by outcome.",
		}, []string{"status"}),
		RoundLatencySeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "round_latency_seconds",
			Help:      "End-to-end round resolution latency including judge retries.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		ContinuationFallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "continuation_fallbacks_total",
			Help:      "Continuations degraded to canned text.",
		}, []string{"slot"}),
		PointsAwarded: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "points_awarded",
			Help:      "Points gained per successful round.",
			Buckets:   prometheus.LinearBuckets(0, 100, 10),
		}),
		GameOversTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "game_overs_total",
			Help:      "Game-ending rounds by triggering slot.",
		}, []string{"slot"}),
	}
}
