// Package history holds the local run history command
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
package history

import (
	"github.com/spf13/cobra"

	"github.com/cisco-open/nd-insights-client/ndictl/clients"
	"github.com/cisco-open/nd-insights-client/pkg/history"
)

// Cmd represents the entry point for inspecting past applies
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List recent apply outcomes recorded on this machine",
	RunE:  run,
}

var limit int

func init() {
	Cmd.Flags().IntVar(&limit, "limit", 20, "how many entries to list")
}

func run(cmd *cobra.Command, _ []string) error {
	path, err := history.DefaultPath()
	if err != nil {
		return err
	}

	store, err := history.Open(cmd.Context(), path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	return clients.PrintJSON(entries)
}
