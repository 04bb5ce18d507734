package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cassowary",
	Short: "cassowary inspects and solves serialized constraint systems",
	Long: `cassowary inspects and solves serialized constraint systems.

A system file holds constraints and edit suggestions produced by
cassowary.Snapshot. The solve command loads one, solves it and prints the
variable values; demo writes a small sample system to experiment with.`,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
