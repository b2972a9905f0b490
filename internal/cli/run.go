package cli

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gosc3k/ixfkit/bundle"
	"github.com/gosc3k/ixfkit/container"
	"github.com/gosc3k/ixfkit/internal/dedup"
)

// Run walks cfg.Paths, processing every recognised container file it
// finds. A per-file error is logged and does not abort the walk; Run
// returns a non-nil error only if any file failed, so the caller can set
// a non-zero exit code.
func Run(cfg *Config) error {
	failed := false

	err := Walk(cfg.Paths, func(path string) error {
		if err := processFile(cfg, path); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}

		return nil
	})
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("one or more files failed")
	}

	return nil
}

func processFile(cfg *Config, path string) error {
	c, err := container.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()

	entries := c.Entries()

	if cfg.ListOnly {
		for _, e := range entries {
			fmt.Printf("%s\t%s\n", path, Filename(e))
		}

		return nil
	}

	cache := dedup.New()
	var resources []bundle.Resource

	for _, e := range entries {
		data, _, err := c.Extract(e)
		if err != nil {
			log.Printf("%s: entry %s: %v", path, Filename(e), err)
			continue
		}

		if cache.Seen(e, data) {
			continue
		}

		name := Filename(e)

		if cfg.Bundle != "" {
			resources = append(resources, bundle.Resource{Name: name, Data: data})
			continue
		}

		if err := Write(cfg.ExtractDir, name, data, cfg.Overwrite); err != nil {
			log.Printf("%s: entry %s: %v", path, name, err)
		}
	}

	if cfg.Bundle != "" && len(resources) > 0 {
		return writeBundle(cfg, path, resources)
	}

	return nil
}

func writeBundle(cfg *Config, containerPath string, resources []bundle.Resource) error {
	packed, err := bundle.Pack(resources, cfg.Bundle)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(containerPath), filepath.Ext(containerPath))
	name := fmt.Sprintf("%s.bundle.%s", base, cfg.Bundle)

	return Write(cfg.ExtractDir, name, packed, cfg.Overwrite)
}
