package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/endowlab/endowdb/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the store and ensure its schema",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	st, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	version, _ := st.Version()
	fmt.Printf("Store ready at %s (schema v%s)\n", flagDB, version)
	return nil
}
