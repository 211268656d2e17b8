package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/markbook/core/history"
)

var (
	historySince  string
	historyInput  string
	historyStatus string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded grading runs",
}

var historyLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded runs, oldest first",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

func init() {
	historyLsCmd.Flags().StringVar(&historySince, "since", "", "duration (24h) or RFC3339 time")
	historyLsCmd.Flags().StringVar(&historyInput, "input", "", "only runs of this input")
	historyLsCmd.Flags().StringVar(&historyStatus, "status", "", "ok or failed")
	historyLsCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the most recent runs")
	historyCmd.AddCommand(historyLsCmd)
	rootCmd.AddCommand(historyCmd)
}

func listHistory(cmd *cobra.Command, args []string) error {
	q := history.Query{Input: historyInput, Status: historyStatus, Limit: historyLimit}
	if historySince != "" {
		start, err := parseSince(historySince, time.Now())
		if err != nil {
			return err
		}
		q.Start = start
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := history.New(cfg.History)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Query(context.Background(), q)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTIME\tINPUT\tSTATUS\tRECORDS\tFIRST\tSECOND\tTHIRD\tFAIL\tERROR")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Timestamp.Format(time.RFC3339), r.Input, r.Status, r.Records,
			r.Summary.First, r.Summary.Second, r.Summary.Third, r.Summary.Fail, r.ErrorKind)
	}
	return tw.Flush()
}

// parseSince accepts a duration relative to now or an absolute RFC3339 time.
func parseSince(s string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: want a duration or RFC3339 time", s)
	}
	return t, nil
}
