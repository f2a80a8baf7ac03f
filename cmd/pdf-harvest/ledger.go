// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-harvest/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List links recorded in the ledger",
	Long: `Ledger prints the links recorded by harvest runs that were given a
--ledger database, newest first, with their status, local path, and the
reason for any failure. Use --runs to list the runs instead.`,
	RunE: runLedger,
}

func init() {
	addHarvestFlags(ledgerCmd)
	ledgerCmd.Flags().Int("limit", 20, "maximum number of entries to show (0 for all)")
	ledgerCmd.Flags().Bool("runs", false, "list runs instead of links")
	ledgerCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(ledgerCmd)
}

func runLedger(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "ledger", "ledger", "")
	if path == "" {
		return fmt.Errorf("no ledger configured: pass --ledger or set ledger in the config file")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}

	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		list, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, list)
		}
		formatRuns(os.Stdout, list)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, entries)
	}
	formatEntries(os.Stdout, entries)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatEntries(w io.Writer, entries []ledger.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-6s  %-14s  %-50s  %s\n", "Run", "Row", "Status", "URL", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		detail := e.Path
		if e.Error != "" {
			detail = e.Error
		}
		fmt.Fprintf(w, "%-5d  %-6d  %-14s  %-50s  %s\n", e.RunID, e.Index, e.Status, truncate(e.URL, 50), detail)
	}
}

func formatRuns(w io.Writer, runs []ledger.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-8s  %-8s  %-20s  %-20s  %s\n", "Run", "Profile", "Mode", "Started", "Finished", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		finished := "-"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%-5d  %-8s  %-8s  %-20s  %-20s  %s\n",
			r.ID, r.Profile, r.Mode, r.StartedAt.Local().Format(time.DateTime), finished, r.Output)
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
