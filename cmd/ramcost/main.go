// Package main provides the ramcost CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ramcost"
	"ramcost/callgraph"
	"ramcost/cost"
	"ramcost/costdiff"
	"ramcost/history"
	"ramcost/internal/config"
	"ramcost/internal/scriptdir"
	"ramcost/link"
	"ramcost/reach"
	"ramcost/trace"
)

var rootCmd = &cobra.Command{
	Use:   "ramcost",
	Short: "Static RAM-cost analyzer for sandboxed scripts",
}

var calcCmd = &cobra.Command{
	Use:   "calc <entry>",
	Short: "Calculate the RAM cost of an entry script",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalc,
}

var graphCmd = &cobra.Command{
	Use:   "graph <entry>",
	Short: "Render the call graph reachable from an entry script",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

var diffCmd = &cobra.Command{
	Use:   "diff <old-entry> <new-entry>",
	Short: "Compare the RAM cost of two revisions of an entry script",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

var (
	calcOtherDir   string
	calcCostFile   string
	calcPlayerFile string
	calcHistoryDB  string

	graphOtherDir string
	graphOutFile  string

	diffOtherDir string
	diffCostFile string
)

func init() {
	calcCmd.Flags().StringVar(&calcOtherDir, "other", "", "Directory of auxiliary script files the entry may import")
	calcCmd.Flags().StringVar(&calcCostFile, "cost", "", "Cost table YAML (required)")
	calcCmd.Flags().StringVar(&calcPlayerFile, "player", "", "Player-state YAML for player-dependent cost entries")
	calcCmd.Flags().StringVar(&calcHistoryDB, "history", "", "SQLite history database to append the result to")
	calcCmd.MarkFlagRequired("cost")

	graphCmd.Flags().StringVar(&graphOtherDir, "other", "", "Directory of auxiliary script files the entry may import")
	graphCmd.Flags().StringVar(&graphOutFile, "out", "", "Output file (.dot or .json); defaults to dot on stdout")

	diffCmd.Flags().StringVar(&diffOtherDir, "other", "", "Directory of auxiliary script files both entries may import")
	diffCmd.Flags().StringVar(&diffCostFile, "cost", "", "Cost table YAML (required)")
	diffCmd.MarkFlagRequired("cost")

	rootCmd.AddCommand(calcCmd, graphCmd, diffCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	entryPath := args[0]

	code, err := os.ReadFile(entryPath)
	if err != nil {
		return fmt.Errorf("reading entry script %q: %w", entryPath, err)
	}

	other, err := loadOtherScripts(calcOtherDir)
	if err != nil {
		return err
	}

	table, err := loadCostTable(calcCostFile)
	if err != nil {
		return err
	}

	player, err := config.LoadPlayerYAML(calcPlayerFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	modules, err := ramcost.ParseAll(ctx, string(code), other)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", entryPath, err)
	}

	result := reach.Find(modules, reach.DefaultEntry)
	calc := cost.Reduce(result.Unresolved, table, player)

	printCalculation(cmd, calc)

	if calcHistoryDB != "" {
		if err := logHistory(calcHistoryDB, string(code), result, calc); err != nil {
			return err
		}
	}

	return nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	entryPath := args[0]

	code, err := os.ReadFile(entryPath)
	if err != nil {
		return fmt.Errorf("reading entry script %q: %w", entryPath, err)
	}

	other, err := loadOtherScripts(graphOtherDir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	modules, err := ramcost.ParseAll(ctx, string(code), other)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", entryPath, err)
	}

	result := reach.Find(modules, reach.DefaultEntry)
	g := callgraph.Build(modules, result)

	out := cmd.OutOrStdout()
	if graphOutFile == "" {
		return callgraph.WriteDot(out, g)
	}

	f, err := os.Create(graphOutFile)
	if err != nil {
		return fmt.Errorf("creating %q: %w", graphOutFile, err)
	}
	defer f.Close()

	if strings.HasSuffix(graphOutFile, ".json") {
		return callgraph.WriteJSON(f, g)
	}
	return callgraph.WriteDot(f, g)
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldPath, newPath := args[0], args[1]

	other, err := loadOtherScripts(diffOtherDir)
	if err != nil {
		return err
	}

	table, err := loadCostTable(diffCostFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	oldCalc, err := calculateFromFile(ctx, oldPath, other, table)
	if err != nil {
		return err
	}
	newCalc, err := calculateFromFile(ctx, newPath, other, table)
	if err != nil {
		return err
	}

	d := costdiff.Compare(oldCalc, newCalc)
	printDiff(cmd, d)
	return nil
}

func calculateFromFile(ctx context.Context, path string, other []link.ScriptFile, table *cost.Table) (cost.Calculation, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return cost.Calculation{}, fmt.Errorf("reading entry script %q: %w", path, err)
	}
	calc, err := ramcost.CalculateRamUsage(ctx, nil, string(code), other, table)
	if err != nil {
		return cost.Calculation{}, fmt.Errorf("calculating RAM usage for %q: %w", path, err)
	}
	return calc, nil
}

func loadOtherScripts(dir string) ([]link.ScriptFile, error) {
	if dir == "" {
		return nil, nil
	}
	return scriptdir.Load(dir)
}

func loadCostTable(path string) (*cost.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cost table %q: %w", path, err)
	}
	table, err := cost.LoadTableYAML(content)
	if err != nil {
		return nil, fmt.Errorf("loading cost table %q: %w", path, err)
	}
	return table, nil
}

func logHistory(dbPath, entryCode string, result reach.Result, calc cost.Calculation) error {
	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entriesJSON, err := trace.CanonicalJSON(calc.Entries)
	if err != nil {
		return fmt.Errorf("encoding entries for history: %w", err)
	}

	filePaths := make([]string, 0, len(result.Resolved))
	for _, fn := range result.Resolved {
		filePaths = append(filePaths, fn.FilePath)
	}
	id := trace.InvocationID(entryCode, filePaths)
	rec := history.Record{
		TraceID:     id,
		EntryDigest: trace.DigestHex([]byte(entryCode)),
		Cost:        int64(calc.Cost),
		EntriesJSON: string(entriesJSON),
		CreatedAt:   time.Now().Unix(),
	}
	if err := db.Insert(rec); err != nil {
		return err
	}
	return nil
}

func printCalculation(cmd *cobra.Command, calc cost.Calculation) {
	out := cmd.OutOrStdout()
	for _, e := range calc.Entries {
		fmt.Fprintf(out, "%-6s %-30s %.4f\n", e.Type, e.Name, e.Cost)
	}
	fmt.Fprintf(out, "total: %.4f\n", calc.Cost)
}

func printDiff(cmd *cobra.Command, d costdiff.Diff) {
	out := cmd.OutOrStdout()
	for _, c := range d.Changes {
		switch c.Kind {
		case costdiff.EntryAdded:
			fmt.Fprintf(out, "+ %-6s %-30s %.4f\n", c.Type, c.Name, c.NewCost)
		case costdiff.EntryRemoved:
			fmt.Fprintf(out, "- %-6s %-30s %.4f\n", c.Type, c.Name, c.OldCost)
		case costdiff.EntryCostDelta:
			fmt.Fprintf(out, "~ %-6s %-30s %.4f -> %.4f\n", c.Type, c.Name, c.OldCost, c.NewCost)
		}
	}
	fmt.Fprintf(out, "total: %.4f -> %.4f\n", d.OldTotal, d.NewTotal)
}
