package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrissnell/youngslab/internal/script"
)

var (
	scriptFile   string
	scriptOutput string
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Write the MATLAB plotting script for a measurement file",
	RunE:  runScript,
}

func init() {
	scriptCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "Measurement file (.yaml, .toml or .json)")
	scriptCmd.Flags().StringVarP(&scriptOutput, "output", "o", "", "Write to this path instead of stdout (e.g. "+script.Filename+")")
	scriptCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	res, err := runFile(scriptFile)
	if err != nil {
		return err
	}

	src, err := script.MATLAB(res)
	if err != nil {
		return err
	}

	if scriptOutput == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), src)
		return err
	}
	return os.WriteFile(scriptOutput, []byte(src), 0o644)
}
