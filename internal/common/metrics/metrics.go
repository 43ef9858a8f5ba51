// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentroi",
			Name:      "worker_jobs_completed_total",
			Help:      "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentroi",
			Name:      "worker_jobs_failed_total",
			Help:      "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentroi",
			Name:      "worker_job_duration_seconds",
			Help:      "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "talentroi",
			Name:      "worker_jobs_active",
			Help:      "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CalculationsByTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentroi",
			Name:      "calculations_by_tier_total",
			Help:      "Completed savings calculations by recommended plan tier",
		},
		[]string{"plan_id"},
	)

	FloorGuaranteeApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "talentroi",
			Name:      "floor_guarantee_applied_total",
			Help:      "Calculations where the savings guarantee rewrote the displayed plan cost",
		},
	)
)
