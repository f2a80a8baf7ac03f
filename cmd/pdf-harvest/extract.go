// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-harvest/internal/convert"
	"github.com/pdiddy/pdf-harvest/internal/harvest"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Extract text from local PDFs into the combined output",
	Long: `Extract reads local PDF files in the order given, extracts their text
page by page, and writes it to the combined output file using the
configured aggregation mode. Files that cannot be read contribute the
text gathered before the failure.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	addProfileFlag(extractCmd)
	addConvertFlags(extractCmd)

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := harvestConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.LogFormat)

	open, err := convert.NewOpener(cfg.Conversion.Backend)
	if err != nil {
		return err
	}

	summary, err := harvest.Combine(cmd.Context(), args, cfg.Conversion, harvest.Deps{Open: open, Log: log})
	if err != nil {
		return err
	}
	if summary.ExtractFailed > 0 {
		return fmt.Errorf("%d file(s) failed extraction", summary.ExtractFailed)
	}
	return nil
}
