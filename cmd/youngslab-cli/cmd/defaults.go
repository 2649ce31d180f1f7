package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrissnell/youngslab/pkg/dataset"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

var defaultsFormat string

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the worked example as a measurement file",
	Example: `  youngslab-cli defaults > bench.yaml
  youngslab-cli defaults --format toml > bench.toml`,
	RunE: runDefaults,
}

func init() {
	defaultsCmd.Flags().StringVar(&defaultsFormat, "format", string(dataset.FormatYAML), "Output format: yaml, toml or json")
	rootCmd.AddCommand(defaultsCmd)
}

func runDefaults(cmd *cobra.Command, args []string) error {
	file := dataset.FromRaw("default", elasticity.DefaultDataset())
	return dataset.Encode(cmd.OutOrStdout(), dataset.Format(defaultsFormat), file)
}
