// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test"}
	addProfileFlag(cmd)
	addLinkFlags(cmd)
	addFetchFlags(cmd)
	addConvertFlags(cmd)
	addHarvestFlags(cmd)
	return cmd
}

func TestHarvestConfig_ProfileDefaults(t *testing.T) {
	cmd := newTestCommand(t)

	cfg, err := harvestConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "london_pdf_links.csv", cfg.Links.Input)
	assert.Equal(t, types.ModeVerbatim, cfg.Conversion.Mode)
	assert.Empty(t, cfg.Ledger)
}

func TestHarvestConfig_ConfigOverridesProfile(t *testing.T) {
	cmd := newTestCommand(t)
	viper.Set("profile", "aspx")
	viper.Set("conversion.output", "from-config.txt")
	viper.Set("acquisition.download_delay", "2s")

	cfg, err := harvestConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "london_aspx_links.csv", cfg.Links.Input)
	assert.Equal(t, "from-config.txt", cfg.Conversion.Output)
	assert.Equal(t, 2*time.Second, cfg.Acquisition.DownloadDelay)
	assert.Equal(t, types.ModeDedup, cfg.Conversion.Mode)
}

func TestHarvestConfig_FlagOverridesConfig(t *testing.T) {
	cmd := newTestCommand(t)
	viper.Set("conversion.mode", "dedup")
	viper.Set("links.input", "config.csv")
	require.NoError(t, cmd.Flags().Set("mode", "verbatim"))
	require.NoError(t, cmd.Flags().Set("timeout", "30s"))

	cfg, err := harvestConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, types.ModeVerbatim, cfg.Conversion.Mode)
	assert.Equal(t, "config.csv", cfg.Links.Input)
	assert.Equal(t, 30*time.Second, cfg.Acquisition.Timeout)
}

func TestHarvestConfig_Environment(t *testing.T) {
	cmd := newTestCommand(t)
	viper.SetEnvPrefix("PDF_HARVEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	t.Setenv("PDF_HARVEST_LINKS_COLUMN", "URL")

	cfg, err := harvestConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "URL", cfg.Links.Column)
}

func TestHarvestConfig_InvalidValues(t *testing.T) {
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Set("mode", "unique"))
	_, err := harvestConfig(cmd)
	assert.ErrorContains(t, err, "unknown mode")

	cmd = newTestCommand(t)
	require.NoError(t, cmd.Flags().Set("profile", "docx"))
	_, err = harvestConfig(cmd)
	assert.ErrorContains(t, err, "unknown profile")
}
