package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/chrissnell/youngslab/internal/report"
)

var (
	computeFile string
	computeJSON bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute Young's modulus from a measurement file",
	Long: `Runs intake, the stress-strain reduction, the least-squares fit and the
uncertainty estimate, then prints the report as text (or the result bundle as JSON).`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeFile, "file", "f", "", "Measurement file (.yaml, .toml or .json)")
	computeCmd.Flags().BoolVar(&computeJSON, "json", false, "Print the result bundle as JSON")
	computeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	res, err := runFile(computeFile)
	if err != nil {
		return err
	}

	if computeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	doc := report.Build(res, report.Options{Title: settings.Report.Title})
	return report.RenderText(cmd.OutOrStdout(), doc)
}
