// Package delta holds the delta-analysis command
/*
Copyright © 2024 Cisco Systems, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package delta

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cisco-open/nd-insights-client/ndictl/clients"
	"github.com/cisco-open/nd-insights-client/pkg/archive"
	"github.com/cisco-open/nd-insights-client/pkg/ndi"
	"github.com/cisco-open/nd-insights-client/pkg/notify"
	"github.com/cisco-open/nd-insights-client/pkg/reconcile"
)

// Cmd represents the entry point for epoch delta analysis management
var Cmd = &cobra.Command{
	Use:     "delta-analysis",
	Short:   "Manage epoch delta analyses",
	Example: `ndictl delta-analysis --insights-group igName --site fabricName --name jobName --earlier-epoch-id e1 --later-epoch-id e2 --state present`,
	RunE:    run,
}

var (
	insightsGroup    string
	site             string
	name             string
	state            string
	earlierEpochID   string
	laterEpochID     string
	earlierEpochTime string
	laterEpochTime   string
	checkMode        bool
	archiveReport    bool
	pollInterval     time.Duration
	waitTimeout      time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&insightsGroup, "insights-group", "g", "", "the insights group the fabric belongs to")
	Cmd.Flags().StringVarP(&site, "site", "s", "", "the fabric (assurance entity) name")
	Cmd.Flags().StringVarP(&name, "name", "n", "", "the delta analysis job name")
	Cmd.Flags().StringVar(&state, "state", "query", "desired state [present,absent,query,validate]")
	Cmd.Flags().StringVar(&earlierEpochID, "earlier-epoch-id", "", "id of the earlier epoch")
	Cmd.Flags().StringVar(&laterEpochID, "later-epoch-id", "", "id of the later epoch")
	Cmd.Flags().StringVar(&earlierEpochTime, "earlier-epoch-time", "", "collection time of the earlier epoch, RFC3339 or unix milliseconds")
	Cmd.Flags().StringVar(&laterEpochTime, "later-epoch-time", "", "collection time of the later epoch, RFC3339 or unix milliseconds")
	Cmd.Flags().BoolVar(&checkMode, "check", false, "compute the outcome without changing the controller")
	Cmd.Flags().BoolVar(&archiveReport, "archive", false, "archive the validate report to the configured S3 bucket")
	Cmd.Flags().DurationVar(&pollInterval, "poll-interval", reconcile.DefaultPollInterval, "poll interval for the validate state")
	Cmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 30*time.Minute, "how long the validate state waits for completion")

	_ = Cmd.MarkFlagRequired("insights-group")
	_ = Cmd.MarkFlagRequired("site")
}

func run(cmd *cobra.Command, _ []string) error {
	bundle, err := clients.Build()
	if err != nil {
		return err
	}

	desired := reconcile.Desired{
		Kind:           reconcile.KindDeltaAnalysis,
		State:          reconcile.State(state),
		InsightsGroup:  insightsGroup,
		Fabric:         site,
		Name:           name,
		EarlierEpochID: earlierEpochID,
		LaterEpochID:   laterEpochID,
		CheckMode:      checkMode,
		PollInterval:   pollInterval,
	}
	if desired.EarlierEpochTime, err = parseEpochTime(earlierEpochTime); err != nil {
		return err
	}
	if desired.LaterEpochTime, err = parseEpochTime(laterEpochTime); err != nil {
		return err
	}

	ctx := cmd.Context()
	if desired.State == reconcile.StateValidate {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, waitTimeout)
		defer cancel()
	}

	res, err := bundle.Reconciler.Apply(ctx, desired)
	clients.RecordHistory(cmd.Context(), desired, res, err)
	if err != nil {
		return err
	}

	if desired.State == reconcile.StateValidate {
		if err := handleReport(ctx, bundle, desired, res); err != nil {
			return err
		}
	}

	return clients.PrintJSON(res)
}

// handleReport pages and archives the anomaly findings of a validate run
func handleReport(ctx context.Context, bundle *clients.Bundle, desired reconcile.Desired, res reconcile.Result) error {
	report := anomalyReport(res)

	notifier := notify.NewFromEnv(bundle.Config.Host)
	if err := notifier.AnomaliesFound(ctx, desired.InsightsGroup, desired.Fabric, desired.Name, report); err != nil {
		return err
	}

	if archiveReport {
		uploader, err := archive.NewFromEnv(ctx)
		if err != nil {
			return err
		}
		if uploader == nil {
			return fmt.Errorf("--archive was requested but NDI_ARCHIVE_BUCKET is not set")
		}
		if _, err := uploader.Report(ctx, string(desired.Kind), desired.Name, res.Current); err != nil {
			return err
		}
	}
	return nil
}

// anomalyReport re-types the anomaly fields of a result snapshot
func anomalyReport(res reconcile.Result) *ndi.AnomalyReport {
	raw, err := json.Marshal(res.Current)
	if err != nil {
		return nil
	}
	report := &ndi.AnomalyReport{}
	if err := json.Unmarshal(raw, report); err != nil {
		return nil
	}
	return report
}

// parseEpochTime accepts RFC3339 timestamps or raw unix milliseconds
func parseEpochTime(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	if msecs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return msecs, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, fmt.Errorf("could not parse epoch time '%s', expected RFC3339 or unix milliseconds: %w", value, err)
	}
	return t.UnixMilli(), nil
}
