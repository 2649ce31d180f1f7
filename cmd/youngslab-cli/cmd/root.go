package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/log"
	"github.com/chrissnell/youngslab/pkg/config"
	"github.com/chrissnell/youngslab/pkg/dataset"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "youngslab-cli",
	Short: "Young's modulus calculator for optical-lever measurements",
	Long: `youngslab-cli runs the Young's modulus calculation on a measurement file
without starting the server.

Measurement files are YAML, TOML or JSON with the keys diameters_mm,
optical_path_mm, wire_length_mm, lever_arm_mm, loading_mm and unloading_mm.
Run "youngslab-cli defaults" for a complete example.`,
	Version:       constants.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(verbose)
	},
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	log.Sync()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file for report and chart settings (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func printError(err error) {
	if elasticity.IsInputError(err) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", elasticity.Message(err))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// loadSettings returns the configuration named by --config, or the defaults
func loadSettings() (*config.ConfigData, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.NewYAMLProvider(cfgFile).LoadConfig()
}

// runFile loads a measurement file and runs the pipeline on it
func runFile(path string) (*elasticity.Result, error) {
	file, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := elasticity.Run(file.Fields())
	if err != nil {
		log.Debugw("calculation rejected", "file", path, "kind", elasticity.Kind(err))
		return nil, err
	}
	if !res.Uncertainty.Finite() {
		log.Warnw("uncertainty is not finite", "file", path, "relative", res.Uncertainty.Relative)
	}
	return res, nil
}
