package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/config"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "chartsync",
	Short: "Case record diagnosis linkage and assessment tool",
	Long: "Keeps billing codes and orders/referrals linked to a case's diagnosis list, " +
		"namespaces regional assessment data, and publishes normalized cases to Postgres.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			return
		}
		if err := cfg.LoadFromFile(configPath); err != nil {
			log := logging.Setup(cfg.LogFormat)
			log.Error().Err(err).Str("config", configPath).Msg("config load failed")
			os.Exit(exitcode.UsageError)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("CHARTSYNC_DB_URL"), "Postgres connection string (or set CHARTSYNC_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.CatalogPath, "catalog", "", "Region catalog YAML (built-in catalog when empty)")
	pf.StringVar(&configPath, "config", "", "YAML config file (regions, materialize_defaults, migrate_legacy_keys)")
}
