package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "easydev",
		Short:        "EasyDev API: accounts, notes, snippets, AI text tools and Excel to PDF",
		SilenceUsage: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd())

	// `easydev` with no subcommand serves.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
