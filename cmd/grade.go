package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/markbook/core/pipeline"
)

var gradeOutput string

var gradeCmd = &cobra.Command{
	Use:   "grade <input>",
	Short: "Grade a mark sheet, write the ranked report and print the distribution",
	Args:  cobra.ExactArgs(1),
	RunE:  grade,
}

func init() {
	gradeCmd.Flags().StringVarP(&gradeOutput, "output", "o", "", "report path (default from config, output.txt)")
	rootCmd.AddCommand(gradeCmd)
}

func grade(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	output := svc.Config.Report.Output
	if gradeOutput != "" {
		output = gradeOutput
	}
	res, err := svc.Pipeline.Run(ctx, args[0], output)
	if err != nil {
		return err
	}
	return pipeline.WriteSummary(cmd.OutOrStdout(), res.Summary, res.Output)
}
