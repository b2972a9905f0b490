package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// recognisedExtensions are the seven container extensions this tool scans
// for, matched case-insensitively.
var recognisedExtensions = map[string]bool{
	".dat": true,
	".ixf": true,
	".bld": true,
	".sc3": true,
	".st3": true,
	".sct": true,
	".cfg": true,
}

// Walk visits every recognised container file reachable from roots,
// calling fn once per file in lexical order within each directory. A
// root that is itself a file is visited directly regardless of its
// extension.
func Walk(roots []string, fn func(path string) error) error {
	for _, root := range roots {
		if err := walkOne(root, fn); err != nil {
			return err
		}
	}

	return nil
}

func walkOne(root string, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fn(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !recognisedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		return fn(path)
	})
}
