package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atelier-ui/cassowary"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo [system.csys]",
	Short: "writes a sample serialized constraint system",
	Run:   cmdDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func cmdDemo(cmd *cobra.Command, args []string) {
	path := "layout.csys"
	if len(args) > 0 {
		path = filepath.Clean(args[0])
	}

	// a document pane: right == left + width, pinned left edge, preferred
	// width, and a pending drag of the width to 150
	left := cassowary.NewVariable("left")
	width := cassowary.NewVariable("width")
	right := cassowary.NewVariable("right")

	constraints := []*cassowary.Constraint{
		cassowary.NewConstraint(cassowary.NewExpression(left, width, cassowary.NewTerm(right, -1)), cassowary.EQ),
		cassowary.NewConstraint(cassowary.NewExpression(left), cassowary.EQ),
		cassowary.NewConstraint(cassowary.NewExpression(width, -100), cassowary.EQ, cassowary.Strong),
	}
	sys := cassowary.Snapshot(constraints, cassowary.Suggestion{
		Variable: width,
		Strength: cassowary.Strong,
		Value:    150,
	})

	data, err := sys.ToBytes()
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %d constraints, %d edits\n", "wrote sample system", path, len(sys.Constraints), len(sys.Edits))
}
