// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan enumerates candidate image files under a root directory,
// filtering by a configured extension set.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParseExtensions parses a comma-separated extension list into a lowercase
// set. Entries are trimmed, lowercased, and stripped of a leading dot, so
// "HEIC, .heif" and "heic,heif" produce the same set. An empty result is a
// configuration error.
func ParseExtensions(csv string) (map[string]bool, error) {
	exts := make(map[string]bool)
	for _, e := range strings.Split(csv, ",") {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
		if e != "" {
			exts[e] = true
		}
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("extension list %q yielded no valid extensions", csv)
	}
	return exts, nil
}

// Discover returns the files under root whose extension (case-insensitive,
// without the dot) is in exts, sorted lexicographically for deterministic
// processing order. Non-recursive mode visits only direct children of root;
// recursive mode visits the full subtree. A missing or non-directory root is
// an error, fatal for the whole run.
func Discover(root string, exts map[string]bool, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("directory %s not found: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && matches(path, exts) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && matches(e.Name(), exts) {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// matches reports whether path's extension, lowercased and without the dot,
// is in exts.
func matches(path string, exts map[string]bool) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return exts[ext]
}
