package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ddanilov/hhscreen/internal/logger"
	"github.com/ddanilov/hhscreen/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild the Markdown report from the latest saved results",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("reports-dir", "reports", "directory with saved results")
}

func runReport(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	reportsDir, _ := cmd.Flags().GetString("reports-dir")
	results, err := report.LoadLatest(reportsDir)
	if err != nil {
		return err
	}

	_, err = report.SaveReport(results, reportsDir)
	return err
}
