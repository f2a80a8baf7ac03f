// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective harvest configuration",
	Long: `Config resolves the configuration a harvest run would use (profile
preset, then config file and PDF_HARVEST_* environment, then flags) and
prints it as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := harvestConfig(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	addProfileFlag(configCmd)
	addLinkFlags(configCmd)
	addFetchFlags(configCmd)
	addConvertFlags(configCmd)
	addHarvestFlags(configCmd)

	rootCmd.AddCommand(configCmd)
}

func addProfileFlag(cmd *cobra.Command) {
	cmd.Flags().String("profile", "", "preset to start from: pdf or aspx (default pdf)")
}

func addLinkFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "CSV file holding the links (default from profile)")
	cmd.Flags().String("column", "", "header of the link column (default Link)")
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("docs-dir", "", "directory for downloaded documents (default from profile)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default none)")
	cmd.Flags().Duration("delay", 0, "delay between consecutive downloads")
	cmd.Flags().String("user-agent", "", "User-Agent header for downloads (default Go's)")
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("output", "", "combined text file (default from profile)")
	cmd.Flags().String("mode", "", "aggregation mode: verbatim or dedup (default from profile)")
	cmd.Flags().String("backend", "", "text extraction backend: fitz or pdf (default fitz)")
	cmd.Flags().String("log-format", "", "console log format: plain or leveled (default from profile)")
}

func addHarvestFlags(cmd *cobra.Command) {
	cmd.Flags().String("ledger", "", "SQLite ledger recording every processed link (default off)")
}

// stringSetting returns the flag value when the flag was given, else the
// config file or environment value for key, else fallback.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

// durationSetting is stringSetting for durations.
func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return fallback
}

// harvestConfig resolves the run configuration for cmd. Settings a
// command has no flag for still resolve from config and environment.
// Config keys follow the YAML printed by the config command.
func harvestConfig(cmd *cobra.Command) (types.HarvestConfig, error) {
	cfg, err := types.Profile(stringSetting(cmd, "profile", "profile", ""))
	if err != nil {
		return cfg, err
	}

	cfg.Links.Input = stringSetting(cmd, "input", "links.input", cfg.Links.Input)
	cfg.Links.Column = stringSetting(cmd, "column", "links.column", cfg.Links.Column)

	cfg.Acquisition.DocsDir = stringSetting(cmd, "docs-dir", "acquisition.docs_dir", cfg.Acquisition.DocsDir)
	cfg.Acquisition.Timeout = durationSetting(cmd, "timeout", "acquisition.timeout", cfg.Acquisition.Timeout)
	cfg.Acquisition.DownloadDelay = durationSetting(cmd, "delay", "acquisition.download_delay", cfg.Acquisition.DownloadDelay)
	cfg.Acquisition.UserAgent = stringSetting(cmd, "user-agent", "acquisition.user_agent", cfg.Acquisition.UserAgent)

	cfg.Conversion.Output = stringSetting(cmd, "output", "conversion.output", cfg.Conversion.Output)
	if cfg.Conversion.Mode, err = types.ParseMode(stringSetting(cmd, "mode", "conversion.mode", string(cfg.Conversion.Mode))); err != nil {
		return cfg, err
	}
	if cfg.Conversion.Backend, err = types.ParseBackend(stringSetting(cmd, "backend", "conversion.backend", string(cfg.Conversion.Backend))); err != nil {
		return cfg, err
	}
	if cfg.LogFormat, err = types.ParseLogFormat(stringSetting(cmd, "log-format", "log_format", string(cfg.LogFormat))); err != nil {
		return cfg, err
	}

	cfg.Ledger = stringSetting(cmd, "ledger", "ledger", cfg.Ledger)
	return cfg, nil
}
