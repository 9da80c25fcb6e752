package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmelo/ticketstats/internal/csvread"
	"github.com/dmelo/ticketstats/internal/exitcode"
	"github.com/dmelo/ticketstats/internal/logging"
	"github.com/dmelo/ticketstats/internal/normalize"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dry-run schema resolution for a single export file (no aggregation)",
	RunE:  runInspect,
}

var inspectFile string

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Path to an export CSV (required)")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	if cfg.ConfigPath != "" {
		if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	schema := cfg.Schema()

	sha, err := normalize.FileHash(inspectFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}
	stat, err := os.Stat(inspectFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	tbl, err := csvread.Open(inspectFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse export file")
		os.Exit(exitcode.ValidationError)
	}

	cols := normalize.ResolveColumns(tbl, schema)

	fmt.Println("=== ticketstats inspect ===")
	fmt.Printf("File:       %s\n", inspectFile)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Data rows:  %d\n", len(tbl.Rows))
	fmt.Println()
	fmt.Println("Column resolution:")
	for _, f := range schema.Fields {
		if idx, ok := cols[f.Canonical]; ok {
			fmt.Printf("  %-15s ← %q\n", f.Canonical, tbl.Header[idx])
		} else if f.Required {
			fmt.Printf("  %-15s MISSING (required; accepted: %v)\n", f.Canonical, f.Aliases)
		} else {
			fmt.Printf("  %-15s not present\n", f.Canonical)
		}
	}
	fmt.Println()

	tickets, stats, err := normalize.NormalizeTable(tbl, schema)
	if err != nil {
		fmt.Printf("File would be rejected: %v\n", err)
		os.Exit(exitcode.ValidationError)
	}
	fmt.Printf("Rows kept:    %d\n", stats.RowsKept)
	fmt.Printf("Rows dropped: %d\n", stats.RowsDropped)
	if len(tickets) > 0 {
		t := tickets[0]
		fmt.Printf("First ticket: id=%q analyst=%q category=%q created=%s hours=%.2f\n",
			t.ID, t.Analyst, t.Category, t.CreatedAt.Format("2006-01-02 15:04"), t.ResolvedHours)
	}

	return nil
}
