package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/endowlab/endowdb/internal/workbook"
)

var templateCmd = &cobra.Command{
	Use:   "make-template-xlsx <path>",
	Short: "Write an empty workbook with the sheets the importer expects",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(_ *cobra.Command, args []string) error {
	if err := workbook.WriteTemplate(args[0]); err != nil {
		return err
	}
	fmt.Printf("Template written to %s\n", args[0])
	return nil
}
