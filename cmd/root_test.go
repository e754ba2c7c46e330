package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"ingest", "download", "migrate", "status"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "watchlist-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestIngestCommand_Flags(t *testing.T) {
	for _, name := range []string{
		"file", "url", "compressed", "feed-type", "download-only",
		"skip-validation", "max-size-gb", "memory-ceiling-mb", "gc-interval",
		"batch-size",
	} {
		require.NotNil(t, ingestCmd.Flags().Lookup(name), "ingest command should have --%s flag", name)
	}

	assert.Equal(t, "full", ingestCmd.Flags().Lookup("feed-type").DefValue)
}

func TestDownloadCommand_RequiresURL(t *testing.T) {
	flag := downloadCmd.Flags().Lookup("url")
	require.NotNil(t, flag, "download command should have --url flag")
}

func TestStatusCommand_Flags(t *testing.T) {
	flag := statusCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "status command should have --limit flag")
	assert.Equal(t, "20", flag.DefValue)
}

func TestGlobalFlagsBindConfig(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("database-url"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("driver"))
}
