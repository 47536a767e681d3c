// Package metrics provides prometheus instrumentation for the insights client
package metrics

import (
	"os"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
)

// Push collects and pushes metrics to the configured pushgateway
func Push() {
	var promPusher *push.Pusher
	if pushgateway := os.Getenv("NDI_PROMETHEUS_PUSHGATEWAY"); pushgateway != "" {
		promPusher = push.New(pushgateway, "ndictl").Format(expfmt.NewFormat(expfmt.TypeTextPlain))
		promPusher.Collector(APIRequests)
		promPusher.Collector(Applies)
		promPusher.Collector(AnalysesCreated)
		promPusher.Collector(AnalysesDeleted)
		promPusher.Collector(NotificationsSent)
		promPusher.Collector(ReportsArchived)
		err := promPusher.Add()
		if err != nil {
			logging.Errorf("failed to push metrics: %w", err)
		}
	} else {
		logging.Debug("metrics disabled, set env 'NDI_PROMETHEUS_PUSHGATEWAY' to push metrics")
	}
}

// Inc takes a counterVec and a set of label values and increases by one
func Inc(counterVec *prometheus.CounterVec, lsv ...string) {
	metric, err := counterVec.GetMetricWithLabelValues(lsv...)
	if err != nil {
		logging.Error(err)
	}
	metric.Inc()
}

const (
	namespace       = "ndi"
	subsystemClient = "client"
	subsystemApply  = "apply"
	kindLabel       = "kind"
	stateLabel      = "state"
	changedLabel    = "changed"
	methodLabel     = "method"
	codeLabel       = "code"
)

var (
	// APIRequests counts requests sent to the Nexus Dashboard controller by method and response code
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystemClient,
			Name: "api_requests_total",
			Help: "counts requests sent to the ND controller by method and status code",
		}, []string{methodLabel, codeLabel})
	// Applies counts reconcile outcomes by resource kind, requested state and whether a change was made
	Applies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystemApply,
			Name: "applies_total",
			Help: "counts reconcile outcomes by kind, state and changed flag",
		}, []string{kindLabel, stateLabel, changedLabel})
	// AnalysesCreated counts analysis jobs submitted to the controller
	AnalysesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystemApply,
			Name: "analyses_created_total",
			Help: "counts analysis jobs submitted by kind",
		}, []string{kindLabel})
	// AnalysesDeleted counts analysis jobs removed from the controller
	AnalysesDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystemApply,
			Name: "analyses_deleted_total",
			Help: "counts analysis jobs deleted by kind",
		}, []string{kindLabel})
	// NotificationsSent counts anomaly notifications paged out
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystemApply,
			Name: "notifications_sent_total",
			Help: "counts anomaly notifications sent by kind",
		}, []string{kindLabel})
	// ReportsArchived counts analysis reports uploaded to the archive bucket
	ReportsArchived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystemApply,
			Name: "reports_archived_total",
			Help: "counts analysis reports archived by kind",
		}, []string{kindLabel})
)
