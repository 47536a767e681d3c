// Package notify pages out anomaly findings through PagerDuty events
package notify

import (
	"context"
	"fmt"
	"os"

	sdk "github.com/PagerDuty/go-pagerduty"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/cisco-open/nd-insights-client/pkg/metrics"
	"github.com/cisco-open/nd-insights-client/pkg/ndi"
)

// DefaultSeverityThreshold is the lowest anomaly severity that triggers a page
const DefaultSeverityThreshold = ndi.SeverityMajor

// Notifier sends anomaly events to a PagerDuty routing key
type Notifier struct {
	routingKey string
	threshold  string
	source     string
}

// NewFromEnv builds a notifier from the NDI_PD_ROUTING_KEY environment
// variable. It returns nil when no key is configured, which callers treat as
// notifications disabled.
func NewFromEnv(controllerHost string) *Notifier {
	routingKey, exists := os.LookupEnv("NDI_PD_ROUTING_KEY")
	if !exists || routingKey == "" {
		return nil
	}

	threshold := DefaultSeverityThreshold
	if envThreshold, exists := os.LookupEnv("NDI_PD_SEVERITY_THRESHOLD"); exists {
		threshold = envThreshold
	}

	return &Notifier{
		routingKey: routingKey,
		threshold:  threshold,
		source:     controllerHost,
	}
}

// AnomaliesFound pages when the report carries anomalies at or above the
// configured threshold. A report below the threshold is a no-op.
func (n *Notifier) AnomaliesFound(ctx context.Context, insightsGroup string, fabric string, analysisName string, report *ndi.AnomalyReport) error {
	if n == nil || report == nil {
		return nil
	}

	count := report.CountAtLeast(n.threshold)
	if count == 0 {
		logging.Debugf("no anomalies at or above severity %s, not paging", n.threshold)
		return nil
	}

	event := &sdk.V2Event{
		RoutingKey: n.routingKey,
		Action:     "trigger",
		DedupKey:   fmt.Sprintf("ndi-%s-%s-%s", insightsGroup, fabric, analysisName),
		Payload: &sdk.V2Payload{
			Summary:  fmt.Sprintf("analysis %s on fabric %s raised %d anomalies at or above %s", analysisName, fabric, count, n.threshold),
			Source:   n.source,
			Severity: pagerdutySeverity(report),
			Group:    insightsGroup,
			Details: map[string]interface{}{
				"insights_group": insightsGroup,
				"fabric":         fabric,
				"analysis":       analysisName,
				"anomaly_count":  report.Count,
			},
		},
	}

	_, err := sdk.ManageEventWithContext(ctx, *event)
	if err != nil {
		return fmt.Errorf("could not send anomaly event: %w", err)
	}

	metrics.Inc(metrics.NotificationsSent, "anomaly")
	logging.Infof("paged PagerDuty about %d anomalies from analysis %s", count, analysisName)
	return nil
}

// pagerdutySeverity maps the worst anomaly onto the event severity scale
func pagerdutySeverity(report *ndi.AnomalyReport) string {
	if report.CountAtLeast(ndi.SeverityCritical) > 0 {
		return "critical"
	}
	if report.CountAtLeast(ndi.SeverityMajor) > 0 {
		return "error"
	}
	return "warning"
}
