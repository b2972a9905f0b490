// Command ixfextract bulk-extracts resources from IXF/DAT/BLD/SC3/ST3/SCT/
// CFG container files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gosc3k/ixfkit/internal/cli"
)

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("ixfextract: %v", err)
	}
	if len(cfg.Paths) == 0 {
		fmt.Fprintln(os.Stderr, "ixfextract: no input paths given")
		os.Exit(2)
	}

	if err := cli.Run(cfg); err != nil {
		os.Exit(1)
	}
}
