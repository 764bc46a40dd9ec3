package main

import (
	"fmt"
	"os"

	"github.com/pipetka/pipetka/internal/lsp"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "pipetka-lsp",
		Short:        "Language server for pipetka.hcl and color literals",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewServer(version).Run(verbose)
		},
	}
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "log verbosity (repeat for more); logs go to stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
