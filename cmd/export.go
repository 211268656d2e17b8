package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/markbook/core/report"
	"github.com/kilianp07/markbook/pkg/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <input>",
	Short: "Grade a mark sheet and export the ranked records",
	Args:  cobra.ExactArgs(1),
	RunE:  exportRecords,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv, json or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "destination file (stdout when empty)")
	rootCmd.AddCommand(exportCmd)
}

func exportRecords(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, err := svc.Pipeline.Evaluate(context.Background(), args[0])
	if err != nil {
		return err
	}
	write := func(w io.Writer) error { return export.Write(w, format, res.Ranked, res.Summary) }
	if exportOutput == "" {
		return write(cmd.OutOrStdout())
	}
	return report.AtomicWrite(exportOutput, write)
}
