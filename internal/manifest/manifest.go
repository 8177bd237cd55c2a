// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest writes a machine-readable report of a conversion run.
// The report is an output artifact only; nothing ever reads it back.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/heicjpg/pkg/types"
)

// Write serializes results to path. A ".json" extension selects JSON;
// anything else gets YAML.
func Write(path string, results []types.Result) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(results, "", "  ")
	} else {
		data, err = yaml.Marshal(results)
	}
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
