package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrissnell/youngslab/internal/chart"
	"github.com/chrissnell/youngslab/internal/export"
	"github.com/chrissnell/youngslab/internal/log"
	"github.com/chrissnell/youngslab/internal/report"
	"github.com/chrissnell/youngslab/internal/script"
)

var (
	exportFile string
	exportDoc  string
	exportXLSX string
	exportPNG  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the report of a measurement file as .doc, .xlsx and/or PNG",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Measurement file (.yaml, .toml or .json)")
	exportCmd.Flags().StringVar(&exportDoc, "doc", "", "Write the Word-compatible report to this path")
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "Write the spreadsheet to this path")
	exportCmd.Flags().StringVar(&exportPNG, "png", "", "Write the chart snapshot to this path")
	exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportDoc == "" && exportXLSX == "" && exportPNG == "" {
		return errors.New("nothing to export: pass --doc, --xlsx or --png")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	res, err := runFile(exportFile)
	if err != nil {
		return err
	}

	// A chart failure leaves the exports without an image rather than failing them
	var png []byte
	c, err := chart.NewRenderer(settings.Chart.WidthPx, settings.Chart.HeightPx).Render(res)
	if err != nil {
		log.Warnf("chart snapshot unavailable: %v", err)
	} else {
		defer c.Release()
		png, _ = c.Snapshot()
	}

	if exportDoc != "" {
		src, err := script.MATLAB(res)
		if err != nil {
			return err
		}
		doc := report.Build(res, report.Options{Title: settings.Report.Title, ChartPNG: png, Script: src})
		if err := writeFile(exportDoc, func(w io.Writer) error { return export.WriteDoc(w, doc) }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportDoc)
	}

	if exportXLSX != "" {
		if err := writeFile(exportXLSX, func(w io.Writer) error { return export.WriteWorkbook(w, res, png) }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportXLSX)
	}

	if exportPNG != "" {
		if png == nil {
			return errors.New("chart snapshot unavailable")
		}
		if err := os.WriteFile(exportPNG, png, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportPNG)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
