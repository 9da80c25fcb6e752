package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmelo/ticketstats/internal/aggregate"
	"github.com/dmelo/ticketstats/internal/exitcode"
	"github.com/dmelo/ticketstats/internal/filter"
	"github.com/dmelo/ticketstats/internal/logging"
	"github.com/dmelo/ticketstats/internal/pipeline"
	"github.com/dmelo/ticketstats/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Load export files and print the aggregate views",
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringArrayVar(&cfg.Files, "file", nil, "Path to an export CSV (repeatable, required)")
	f.StringSliceVar(&cfg.Analysts, "analysts", nil, "Restrict to these analysts (default: all observed)")
	f.StringSliceVar(&cfg.Categories, "categories", nil, "Restrict to these categories (default: all observed)")
	f.StringVar(&cfg.FromDate, "from", "", "Start of creation-date range, YYYY-MM-DD (default: earliest observed)")
	f.StringVar(&cfg.ToDate, "to", "", "End of creation-date range, inclusive (default: latest observed)")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.ConfigPath != "" {
		if err := cfg.LoadFromFile(cfg.ConfigPath); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	schema := cfg.Schema()

	session := pipeline.NewSession(log, schema)
	ds, _, err := session.Load(ctx, cfg.Files)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyDataset) {
			log.Error().Msg("no valid data found in the uploaded files")
			os.Exit(exitcode.EmptyDataset)
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.ValidationError)
	}

	for _, d := range ds.Diagnostics {
		log.Warn().Msg(d)
	}

	criteria, err := buildCriteria(filter.ObservedDomains(ds))
	if err != nil {
		log.Error().Err(err).Msg("invalid filter selection")
		os.Exit(exitcode.FilterError)
	}

	filtered, err := filter.Apply(ds, criteria)
	if err != nil {
		log.Error().Err(err).Msg("filter refused to run")
		os.Exit(exitcode.FilterError)
	}
	if len(filtered) == 0 {
		log.Warn().Msg("no tickets match the selected filters")
		return nil
	}

	out := os.Stdout
	report.WriteMeanByCategory(out, aggregate.MeanByCategory(filtered))
	fmt.Fprintln(out)
	report.WriteMatrix(out, aggregate.MeanMatrix(filtered))
	fmt.Fprintln(out)
	report.WritePerformance(out, "Analista", aggregate.PerformanceByAnalyst(filtered, schema.SLAMetValue))
	fmt.Fprintln(out)
	report.WritePerformance(out, "Categoria", aggregate.PerformanceByCategory(filtered, schema.SLAMetValue))

	return nil
}

// buildCriteria fills unset selections with the full observed domain, so a
// flagless run reproduces the whole dataset.
func buildCriteria(domains filter.Domains) (filter.Criteria, error) {
	criteria := domains.FullCriteria()
	if len(cfg.Analysts) > 0 {
		criteria.Analysts = cfg.Analysts
	}
	if len(cfg.Categories) > 0 {
		criteria.Categories = cfg.Categories
	}
	var err error
	if cfg.FromDate != "" {
		if criteria.From, err = time.Parse("2006-01-02", cfg.FromDate); err != nil {
			return filter.Criteria{}, fmt.Errorf("parse --from: %w", err)
		}
	}
	if cfg.ToDate != "" {
		if criteria.To, err = time.Parse("2006-01-02", cfg.ToDate); err != nil {
			return filter.Criteria{}, fmt.Errorf("parse --to: %w", err)
		}
	}
	return criteria, criteria.Validate()
}
