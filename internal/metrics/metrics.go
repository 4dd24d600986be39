// Package metrics defines and registers all custom Prometheus metrics for the
// recorder API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time and
// are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recorder"

// RecordingsUploadedTotal counts successfully stored recordings.
// Label:
//   - content_type: the uploaded MIME type (e.g. "audio/webm")
var RecordingsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recordings_uploaded_total",
		Help:      "Total number of recordings successfully uploaded and persisted.",
	},
	[]string{"content_type"},
)

// UploadsRejectedTotal counts uploads rejected before any blob was stored.
// Label:
//   - reason: "unsupported_media" or "too_large"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of uploads rejected by validation, by reason.",
	},
	[]string{"reason"},
)

// UploadBytes measures the size distribution of accepted uploads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size in bytes of accepted audio uploads.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 8), // 16 KiB .. 256 MiB
	},
)

// BlobDeleteFailuresTotal counts best-effort blob deletions that failed while
// the owning metadata row was still removed.
var BlobDeleteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_delete_failures_total",
		Help:      "Total number of stored blobs that could not be deleted alongside their metadata row.",
	},
)

// SessionsStartedTotal counts sessions issued on login and registration.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions started.",
	},
)
