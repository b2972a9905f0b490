package cli

import (
	"flag"
	"testing"

	"github.com/gosc3k/ixfkit/bundle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"input.dat"})
	require.NoError(t, err)

	assert.Equal(t, []string{"input.dat"}, cfg.Paths)
	assert.False(t, cfg.ListOnly)
	assert.False(t, cfg.Overwrite)
	assert.Empty(t, cfg.Bundle)
}

func TestParseArgs_AllFlags(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"--extract", "/tmp/out",
		"--list-entries",
		"--overwrite-existing",
		"--bundle=zstd",
		"input.dat", "another.sc3",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.ExtractDir)
	assert.True(t, cfg.ListOnly)
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, bundle.Zstd, cfg.Bundle)
	assert.Equal(t, []string{"input.dat", "another.sc3"}, cfg.Paths)
}

func TestParseArgs_ShorthandFlags(t *testing.T) {
	cfg, err := ParseArgs([]string{"-e", "/tmp/out", "-l", "-o", "input.dat"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.ExtractDir)
	assert.True(t, cfg.ListOnly)
	assert.True(t, cfg.Overwrite)
}

func TestParseArgs_UnknownBundleCodecIsError(t *testing.T) {
	_, err := ParseArgs([]string{"--bundle=rot13", "input.dat"})
	assert.Error(t, err)
}

func TestParseArgs_Help(t *testing.T) {
	_, err := ParseArgs([]string{"--help"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}
