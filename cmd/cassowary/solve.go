package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atelier-ui/cassowary"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve [system.csys]",
	Short: "loads a serialized constraint system and prints the solution",
	Run:   cmdSolve,
}

var (
	fSuggest []string
	fChanges bool
)

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.PersistentFlags().StringArrayVar(&fSuggest, "suggest", nil, "suggests a value for a variable, as name=value; repeatable")
	solveCmd.PersistentFlags().BoolVar(&fChanges, "changes", false, "prints the change feed instead of all values")
}

func cmdSolve(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing system path -- cassowary solve -h for help")
		os.Exit(-1)
	}
	path := filepath.Clean(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	var sys cassowary.System
	if _, err := sys.FromBytes(data); err != nil {
		fmt.Println("can't load system:", err)
		os.Exit(-1)
	}

	inst, err := sys.Instantiate()
	if err != nil {
		fmt.Println("invalid system:", err)
		os.Exit(-1)
	}

	solver, err := cassowary.NewSolver(cassowary.WithCapacity(len(inst.Constraints)))
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if err := inst.Apply(solver); err != nil {
		fmt.Println("can't solve system:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %d constraints, %d variables\n", "loaded system", path, len(inst.Constraints), len(inst.Variables))

	for _, kv := range fSuggest {
		name, value, err := parseSuggestion(kv)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
		v := inst.Variable(name)
		if v == nil {
			fmt.Println("unknown variable:", name)
			os.Exit(-1)
		}
		if !solver.HasEditVariable(v) {
			if err := solver.AddEditVariable(v, cassowary.Strong); err != nil {
				fmt.Println("error:", err)
				os.Exit(-1)
			}
		}
		if err := solver.SuggestValue(v, value); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
	}

	if fChanges {
		for _, ch := range solver.FetchChanges() {
			fmt.Printf("%s = %g\n", ch.Variable, ch.Value)
		}
		return
	}
	for _, v := range inst.Variables {
		fmt.Printf("%s = %g\n", v, solver.Value(v))
	}
}

// parseSuggestion splits a name=value flag into its parts.
func parseSuggestion(kv string) (string, float64, error) {
	name, raw, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("invalid suggestion %q, expected name=value", kv)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid suggestion value %q: %w", raw, err)
	}
	return name, value, nil
}
