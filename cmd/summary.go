package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/endowlab/endowdb/internal/cli"
	"github.com/endowlab/endowdb/internal/report"
	"github.com/endowlab/endowdb/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Report schema version and per-table row counts",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	sum, err := report.Summarize(flagDB)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return fmt.Errorf("no store at %s (run 'endowdb init' first)", flagDB)
		}
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ENDOWMENT STORE  schema v%s", sum.SchemaVersion)))
	fmt.Println()

	rows := make([][]string, 0, len(sum.Tables))
	for _, tc := range sum.Tables {
		rows = append(rows, []string{tc.Table, cli.FormatCount(tc.Count)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Table", "Rows"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
