// ndictl drives Nexus Dashboard Insights analyses from the command line
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
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cisco-open/nd-insights-client/ndictl/cmd/delta"
	"github.com/cisco-open/nd-insights-client/ndictl/cmd/epochs"
	"github.com/cisco-open/nd-insights-client/ndictl/cmd/history"
	"github.com/cisco-open/nd-insights-client/ndictl/cmd/prechange"
	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/cisco-open/nd-insights-client/pkg/metrics"
)

var rootCmd = &cobra.Command{
	Use:          "ndictl",
	Short:        "Manage Nexus Dashboard Insights analyses",
	Long:         `ndictl creates, queries and deletes epoch delta analyses and pre-change validations on a Cisco Nexus Dashboard Insights controller, with idempotent desired state semantics.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.RawLogger = logging.InitConsoleLogger(logging.LogLevelString)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logging.LogLevelString, "log-level", "l", logging.LogLevelString, "the log level [debug,info,warn,error,fatal]")

	rootCmd.AddCommand(delta.Cmd)
	rootCmd.AddCommand(prechange.Cmd)
	rootCmd.AddCommand(epochs.Cmd)
	rootCmd.AddCommand(history.Cmd)
}

func main() {
	// a .env next to the binary is a convenience for lab use, absence is fine
	_ = godotenv.Load()

	err := rootCmd.Execute()
	metrics.Push()
	if err != nil {
		os.Exit(1)
	}
}
