package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_reservations_created_total",
		Help: "Total number of reservations admitted.",
	})

	CapacityRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_capacity_rejections_total",
		Help: "Total number of reservation requests rejected for lack of capacity.",
	})

	ReservationsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_reservations_cancelled_total",
		Help: "Total number of reservations cancelled.",
	})

	CheckInsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_check_ins_total",
		Help: "Total number of successful luggage check-ins.",
	})

	CheckOutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_check_outs_total",
		Help: "Total number of successful luggage check-outs.",
	})

	PhotoUploadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_photo_upload_failures_total",
		Help: "Total number of check-in photos that could not be uploaded.",
	})

	ExpirationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_expirations_total",
		Help: "Total number of reservations completed by the expiration sweep.",
	})

	SweepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "luggage_sweep_duration_seconds",
		Help:    "Duration of expiration sweeps.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"mode"},
	)

	SweepStoreFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "luggage_sweep_store_failures_total",
		Help: "Total number of per-store sweep failures.",
	},
		[]string{"mode"},
	)

	SweepStoresSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "luggage_sweep_stores_skipped_total",
		Help: "Total number of stores skipped by the frequent sweep thanks to the skip cache.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "luggage_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	SweepCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "luggage_sweep_cache_items",
		Help: "Current number of stores in the sweep skip cache.",
	})

	OutboxPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "luggage_outbox_published_total",
		Help: "Total number of outbox tasks delivered to the broker.",
	},
		[]string{"topic"},
	)
)
