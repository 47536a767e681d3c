package prechange

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cisco-open/nd-insights-client/ndictl/clients"
	"github.com/cisco-open/nd-insights-client/pkg/archive"
	"github.com/cisco-open/nd-insights-client/pkg/reconcile"
)

// complianceCmd queries the compliance results of a completed validation
var complianceCmd = &cobra.Command{
	Use:     "compliance",
	Short:   "Query compliance results of a completed pre-change validation",
	Example: `ndictl prechange compliance --insights-group igName --site fabricName --name pcvName`,
	RunE:    runCompliance,
}

var archiveCompliance bool

func init() {
	complianceCmd.Flags().StringVarP(&insightsGroup, "insights-group", "g", "", "the insights group the fabric belongs to")
	complianceCmd.Flags().StringVarP(&site, "site", "s", "", "the fabric (assurance entity) name")
	complianceCmd.Flags().StringVarP(&name, "name", "n", "", "the pre-change validation name")
	complianceCmd.Flags().BoolVar(&archiveCompliance, "archive", false, "archive the compliance report to the configured S3 bucket")

	_ = complianceCmd.MarkFlagRequired("insights-group")
	_ = complianceCmd.MarkFlagRequired("site")
	_ = complianceCmd.MarkFlagRequired("name")
}

func runCompliance(cmd *cobra.Command, _ []string) error {
	bundle, err := clients.Build()
	if err != nil {
		return err
	}

	desired := reconcile.Desired{
		Kind:          reconcile.KindCompliance,
		State:         reconcile.StateQuery,
		InsightsGroup: insightsGroup,
		Fabric:        site,
		Name:          name,
	}

	ctx := cmd.Context()
	res, err := bundle.Reconciler.Apply(ctx, desired)
	clients.RecordHistory(ctx, desired, res, err)
	if err != nil {
		return err
	}

	if archiveCompliance {
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

	return clients.PrintJSON(res)
}
