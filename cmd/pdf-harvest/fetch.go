// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-harvest/internal/acquire"
	"github.com/pdiddy/pdf-harvest/internal/httputil"
	"github.com/pdiddy/pdf-harvest/internal/links"
	"github.com/pdiddy/pdf-harvest/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download documents without extracting them",
	Long: `Fetch downloads each URL into the documents directory, named after the
URL's final path segment. URLs come from the arguments or, when none are
given, from the link column of the input CSV. Failed downloads are
logged and skipped.`,
	RunE: runFetch,
}

func init() {
	addProfileFlag(fetchCmd)
	addLinkFlags(fetchCmd)
	addFetchFlags(fetchCmd)
	fetchCmd.Flags().String("log-format", "", "console log format: plain or leveled (default from profile)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := harvestConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.LogFormat)

	var records []types.LinkRecord
	if len(args) > 0 {
		for i, arg := range args {
			records = append(records, types.LinkRecord{Index: i, URL: arg})
		}
	} else {
		records, err = links.Read(cfg.Links.Input, cfg.Links.Column)
		if err != nil {
			return err
		}
	}

	client := httputil.NewClient(cfg.Acquisition.HTTPConfig)
	result, err := acquire.FetchBatch(cmd.Context(), client, records, cfg.Acquisition, log)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d link(s) failed", result.Failed+result.Invalid)
	}
	return nil
}
