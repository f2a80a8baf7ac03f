// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-harvest CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdf-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-harvest",
	Short: "Download PDFs listed in a CSV table and combine their text",
	Long: `pdf-harvest reads a column of document links from a CSV table, downloads
each document, extracts its text, and concatenates the results into a
single text file. Optionally, repeated lines are written only once.

The harvest command runs the whole pipeline. fetch and extract run the
download and text stages on their own. Built-in profiles ("pdf" and
"aspx") preset file names, aggregation mode, and log format.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-harvest.yaml or ~/.config/pdf-harvest/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-harvest"))
		}
	}

	viper.SetEnvPrefix("PDF_HARVEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns the console logger for cmd on stderr.
func newLogger(cmd *cobra.Command, format types.LogFormat) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return newConsoleLogger(os.Stderr, format, verbose)
}

// newConsoleLogger writes human-readable log lines to out. Leveled output
// carries an RFC3339 timestamp and level on every line; plain output is
// the bare message. Color is used only when out is a terminal.
func newConsoleLogger(out io.Writer, format types.LogFormat, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !isTerminal(out)}
	if format == types.LogPlain {
		w.NoColor = true
		w.PartsExclude = []string{zerolog.TimestampFieldName, zerolog.LevelFieldName}
		w.FieldsExclude = []string{"index"}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
