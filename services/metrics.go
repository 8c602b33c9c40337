package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Breed sync swallows its errors so the breed write path never fails; these
// counters are the only way to notice the derived categories drifting.
var (
	breedSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "breed_sync_failures_total",
		Help: "Breed to category synchronization attempts that failed and were swallowed.",
	})

	breedSyncMissingRoot = promauto.NewCounter(prometheus.CounterOpts{
		Name: "breed_sync_missing_root_total",
		Help: "Breed sync invocations skipped because the Dogs root category is missing.",
	})

	breedSyncDerived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "breed_sync_derived_categories_total",
		Help: "Derived categories created or reactivated from popular breeds.",
	})

	usageSweepCorrections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "usage_sweep_corrections_total",
		Help: "Category usage counters corrected by the reconciliation sweep.",
	})
)
