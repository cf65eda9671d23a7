package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/endowlab/endowdb/internal/store"
	"github.com/endowlab/endowdb/internal/workbook"
)

var importCmd = &cobra.Command{
	Use:   "import-xlsx <workbook>",
	Short: "Import an xlsx workbook into the store",
	Long: "Process the recognized sheets of a workbook. Absent sheets are\n" +
		"skipped; rows missing required fields are dropped silently.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	st, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stats, err := workbook.Import(st, args[0])
	if err != nil {
		return err
	}

	rows, skipped := stats.Totals()
	fmt.Printf("Imported %d rows from %s (%d sheets, %d skipped)\n",
		rows, args[0], len(stats.Sheets), skipped)

	for _, ss := range stats.Sheets {
		if ss.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "  %s: %d rows dropped\n", ss.Sheet, ss.Skipped)
		}
	}
	return nil
}
