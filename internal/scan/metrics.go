package scan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagtrack_scans_total",
		Help: "Scan outcomes by result.",
	}, []string{"result"})

	casRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tagtrack_scan_cas_retries_total",
		Help: "Toggles retried after losing the conditional update race.",
	})

	auditFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tagtrack_audit_write_failures_total",
		Help: "Audit writes that failed after a committed toggle.",
	})
)
