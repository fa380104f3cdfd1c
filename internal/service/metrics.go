package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	claimTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lostfound_claim_transitions_total",
		Help: "Claim status changes by resulting status.",
	}, []string{"status"})

	loginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_login_failures_total",
		Help: "Failed sign-in attempts recorded by the login guard.",
	})

	accountDeactivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_account_deactivations_total",
		Help: "Accounts deactivated after reaching the failed attempt threshold.",
	})

	guardStoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lostfound_login_guard_store_errors_total",
		Help: "Login-attempt store errors absorbed by failing open.",
	}, []string{"op"})

	activityWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_activity_write_failures_total",
		Help: "Activity log entries that could not be written.",
	})

	bulkWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lostfound_bulk_writes_total",
		Help: "Per-entity writes issued by bulk operations.",
	}, []string{"op", "result"})

	uploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lostfound_upload_stored_bytes",
		Help:    "Size of re-encoded images written to the image store.",
		Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10),
	})
)
