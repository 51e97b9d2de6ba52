// Package metrics exposes the kiosk's prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Checkins counts accepted attendance records by type (entry/exit).
	Checkins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_checkins_total",
		Help: "Accepted attendance records by record type.",
	}, []string{"type"})

	// Rejections counts rejected pipeline runs by reason.
	Rejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_rejections_total",
		Help: "Rejected capture runs by rejection reason.",
	}, []string{"reason"})

	// MatchStage counts which stage resolved each accepted identity.
	MatchStage = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_match_stage_total",
		Help: "Resolved identities by matching stage (face, embedding, pixel, email, enrollment).",
	}, []string{"stage"})
)
