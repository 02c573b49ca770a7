package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - terminal client for the storefront backend",
	Long: `Storefront is a terminal client for the storefront REST backend:
browse stores and products, manage a cart scoped to your selected store,
check out, review past orders, and (for admins) pull analytics.

Session and store selection persist between runs, so you only log in once.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
