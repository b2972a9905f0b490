// Package cli implements the bulk extraction driver: flag parsing, the
// recursive directory walk over recognised container extensions, the
// output filename convention, and a writer that never leaves a partial
// file behind on error.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/gosc3k/ixfkit/bundle"
	"github.com/gosc3k/ixfkit/internal/options"
)

// Config holds one run's settings, built from parsed flags via the
// functional-options pattern shared with the rest of the module.
type Config struct {
	Paths      []string
	ExtractDir string
	ListOnly   bool
	Overwrite  bool
	Bundle     bundle.Name // empty means "no bundling"
}

// Option configures a Config.
type Option = options.Option[*Config]

// WithExtractDir sets the directory extracted resources are written under.
func WithExtractDir(dir string) Option {
	return options.NoError[*Config](func(c *Config) { c.ExtractDir = dir })
}

// WithListOnly enables listing directory entries instead of extracting.
func WithListOnly(listOnly bool) Option {
	return options.NoError[*Config](func(c *Config) { c.ListOnly = listOnly })
}

// WithOverwrite allows the writer to replace existing output files.
func WithOverwrite(overwrite bool) Option {
	return options.NoError[*Config](func(c *Config) { c.Overwrite = overwrite })
}

// WithBundle selects a post-extraction bundling codec.
func WithBundle(codec bundle.Name) Option {
	return options.NoError[*Config](func(c *Config) { c.Bundle = codec })
}

// ParseArgs parses the bulk driver's command-line flags:
//
//	-e, --extract              directory to write extracted resources into
//	-l, --list-entries         list directory entries instead of extracting
//	-o, --overwrite-existing   overwrite files that already exist
//	    --bundle=<codec>        pack a container's output into an archive
//	                            (none, lz4, s2, zstd)
//	-?, --help                  print usage and exit
//
// Remaining non-flag arguments are paths to scan.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("ixfextract", flag.ContinueOnError)

	var extractDir, bundleCodec string
	var listOnly, overwrite, help bool

	fs.StringVar(&extractDir, "extract", "", "directory to write extracted resources into")
	fs.StringVar(&extractDir, "e", "", "shorthand for --extract")
	fs.BoolVar(&listOnly, "list-entries", false, "list directory entries instead of extracting")
	fs.BoolVar(&listOnly, "l", false, "shorthand for --list-entries")
	fs.BoolVar(&overwrite, "overwrite-existing", false, "overwrite files that already exist")
	fs.BoolVar(&overwrite, "o", false, "shorthand for --overwrite-existing")
	fs.StringVar(&bundleCodec, "bundle", "", "pack extracted resources into a single archive (none, lz4, s2, zstd)")
	fs.BoolVar(&help, "help", false, "print usage and exit")
	fs.BoolVar(&help, "?", false, "shorthand for --help")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if help {
		fs.SetOutput(os.Stdout)
		fs.Usage()

		return nil, flag.ErrHelp
	}

	cfg := &Config{Paths: fs.Args()}
	opts := []Option{
		WithExtractDir(extractDir),
		WithListOnly(listOnly),
		WithOverwrite(overwrite),
	}
	if bundleCodec != "" {
		if _, err := bundle.CodecByName(bundle.Name(bundleCodec)); err != nil {
			return nil, fmt.Errorf("--bundle=%s: %w", bundleCodec, err)
		}
		opts = append(opts, WithBundle(bundle.Name(bundleCodec)))
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
