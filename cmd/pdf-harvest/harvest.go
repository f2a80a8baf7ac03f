// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-harvest/internal/convert"
	"github.com/pdiddy/pdf-harvest/internal/harvest"
	"github.com/pdiddy/pdf-harvest/internal/httputil"
	"github.com/pdiddy/pdf-harvest/internal/ledger"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Download every linked document and combine its text",
	Long: `Harvest reads the link column of the input CSV, downloads each document
into the documents directory, extracts its text page by page, and writes
it to the combined output file.

Rows with a missing link are skipped. A link that is not a valid URL,
fails to download, or fails to extract is logged and the run moves on.
In dedup mode each trimmed line is written only the first time it is seen.`,
	Example: `  pdf-harvest harvest
  pdf-harvest harvest --profile aspx
  pdf-harvest harvest --input links.csv --output combined.txt --mode dedup`,
	RunE: runHarvest,
}

func init() {
	addProfileFlag(harvestCmd)
	addLinkFlags(harvestCmd)
	addFetchFlags(harvestCmd)
	addConvertFlags(harvestCmd)
	addHarvestFlags(harvestCmd)
	harvestCmd.Flags().Bool("fail-on-error", false, "exit non-zero when any link fails")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := harvestConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.LogFormat)

	open, err := convert.NewOpener(cfg.Conversion.Backend)
	if err != nil {
		return err
	}

	deps := harvest.Deps{
		Client: httputil.NewClient(cfg.Acquisition.HTTPConfig),
		Open:   open,
		Log:    log,
	}
	if cfg.Ledger != "" {
		store, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Ledger = store
	}

	summary, err := harvest.Run(cmd.Context(), cfg, deps)
	if err != nil {
		return err
	}
	log.Debug().Msg(summary.Describe())

	if failOnError, _ := cmd.Flags().GetBool("fail-on-error"); failOnError && summary.Failures() > 0 {
		return fmt.Errorf("%d link(s) failed", summary.Failures())
	}
	return nil
}
