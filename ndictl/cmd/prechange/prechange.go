// Package prechange holds the prechange command and its compliance subcommand
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
package prechange

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cisco-open/nd-insights-client/ndictl/clients"
	"github.com/cisco-open/nd-insights-client/pkg/reconcile"
)

// Cmd represents the entry point for pre-change validation management
var Cmd = &cobra.Command{
	Use:     "prechange",
	Short:   "Manage pre-change validations",
	Example: `ndictl prechange --insights-group igName --site fabricName --name pcvName --file changes.json --state present`,
	RunE:    run,
}

var (
	insightsGroup string
	site          string
	name          string
	description   string
	file          string
	manual        string
	state         string
	checkMode     bool
	pollInterval  time.Duration
	waitTimeout   time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&insightsGroup, "insights-group", "g", "", "the insights group the fabric belongs to")
	Cmd.Flags().StringVarP(&site, "site", "s", "", "the fabric (assurance entity) name")
	Cmd.Flags().StringVarP(&name, "name", "n", "", "the pre-change validation name")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "description of the pre-change validation")
	Cmd.Flags().StringVarP(&file, "file", "f", "", "path to a change file, JSON or YAML")
	Cmd.Flags().StringVarP(&manual, "manual", "m", "", "inline change list")
	Cmd.Flags().StringVar(&state, "state", "query", "desired state [present,absent,query,wait_and_query]")
	Cmd.Flags().BoolVar(&checkMode, "check", false, "compute the outcome without changing the controller")
	Cmd.Flags().DurationVar(&pollInterval, "poll-interval", reconcile.DefaultPollInterval, "poll interval for the wait_and_query state")
	Cmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 30*time.Minute, "how long wait_and_query waits for completion")

	_ = Cmd.MarkFlagRequired("insights-group")

	Cmd.AddCommand(complianceCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	bundle, err := clients.Build()
	if err != nil {
		return err
	}

	desired := reconcile.Desired{
		Kind:          reconcile.KindPreChange,
		State:         reconcile.State(state),
		InsightsGroup: insightsGroup,
		Fabric:        site,
		Name:          name,
		Description:   description,
		File:          file,
		Manual:        manual,
		CheckMode:     checkMode,
		PollInterval:  pollInterval,
	}

	ctx := cmd.Context()
	if desired.State == reconcile.StateWaitAndQuery {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, waitTimeout)
		defer cancel()
	}

	res, err := bundle.Reconciler.Apply(ctx, desired)
	clients.RecordHistory(cmd.Context(), desired, res, err)
	if err != nil {
		return err
	}

	return clients.PrintJSON(res)
}
