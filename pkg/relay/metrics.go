package relay

import "github.com/zeromicro/go-zero/core/metric"

const (
	outcomeSent          = "sent"
	outcomeInvalid       = "invalid"
	outcomeNotConfigured = "not_configured"
	outcomeFailed        = "failed"
)

var (
	submissions = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "contact",
		Subsystem: "relay",
		Name:      "submissions_total",
		Help:      "Contact submissions by outcome",
		Labels:    []string{"outcome"},
	})

	sendFailures = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "contact",
		Subsystem: "relay",
		Name:      "send_failures_total",
		Help:      "Failed SMTP sends by classified code",
		Labels:    []string{"code"},
	})

	sendDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "contact",
		Subsystem: "relay",
		Name:      "send_duration_seconds",
		Help:      "SMTP send duration in seconds",
		Labels:    []string{"result"},
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10},
	})
)
