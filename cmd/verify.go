package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/markbook/core/grading"
	"github.com/kilianp07/markbook/core/model"
	"github.com/kilianp07/markbook/core/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report>",
	Short: "Check that a report is ranked and every grade matches its marks",
	Args:  cobra.ExactArgs(1),
	RunE:  verify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := grading.NewEngine(cfg.Grading, nil)
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s: %w", model.ErrSourceNotFound, args[0], err)
	}
	defer func() { _ = f.Close() }()
	records, err := report.ReadTable(f)
	if err != nil {
		return err
	}

	problems := verifyRecords(engine, records)
	out := cmd.OutOrStdout()
	for _, p := range problems {
		_, _ = fmt.Fprintln(out, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) in %s", len(problems), args[0])
	}
	_, err = fmt.Fprintf(out, "%s: %d records OK\n", args[0], len(records))
	return err
}

func verifyRecords(engine *grading.Engine, records []model.StudentRecord) []string {
	var problems []string
	for i, r := range records {
		if i > 0 && r.OverallMark < records[i-1].OverallMark {
			problems = append(problems, fmt.Sprintf("row %d (reg %d): overall mark %d below previous row", i+1, r.RegNo, r.OverallMark))
		}
		if !engine.CheckGrade(r) {
			problems = append(problems, fmt.Sprintf("row %d (reg %d): grade %s does not match marks", i+1, r.RegNo, r.Grade))
		}
	}
	return problems
}
