package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-ui/cassowary"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the library version",
	Run:   cmdVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func cmdVersion(cmd *cobra.Command, args []string) {
	fmt.Println("cassowary", cassowary.Version.String())
}
