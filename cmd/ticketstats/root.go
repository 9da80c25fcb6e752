package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmelo/ticketstats/internal/config"
	"github.com/dmelo/ticketstats/internal/exitcode"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "ticketstats",
	Short: "Helpdesk CSV export analyzer",
	Long:  "Normalizes heterogeneous helpdesk ticket exports into one canonical dataset and reports resolution-time and SLA metrics by analyst and category.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	pf.StringVar(&cfg.ConfigPath, "config", "", "Optional YAML file with extra column aliases and SLA settings")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
