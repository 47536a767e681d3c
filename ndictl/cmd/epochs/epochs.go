// Package epochs holds the epochs listing command
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
package epochs

import (
	"github.com/spf13/cobra"

	"github.com/cisco-open/nd-insights-client/ndictl/clients"
)

// Cmd represents the entry point for epoch listing
var Cmd = &cobra.Command{
	Use:     "epochs",
	Short:   "List the finished epochs of a fabric",
	Example: `ndictl epochs --insights-group igName --site fabricName`,
	RunE:    run,
}

var (
	insightsGroup string
	site          string
	size          int
)

func init() {
	Cmd.Flags().StringVarP(&insightsGroup, "insights-group", "g", "", "the insights group the fabric belongs to")
	Cmd.Flags().StringVarP(&site, "site", "s", "", "the fabric (assurance entity) name")
	Cmd.Flags().IntVar(&size, "size", 10, "how many epochs to list")

	_ = Cmd.MarkFlagRequired("insights-group")
	_ = Cmd.MarkFlagRequired("site")
}

func run(cmd *cobra.Command, _ []string) error {
	bundle, err := clients.Build()
	if err != nil {
		return err
	}

	epochs, err := bundle.Service.Epochs(cmd.Context(), insightsGroup, site, size)
	if err != nil {
		return err
	}

	return clients.PrintJSON(epochs)
}
