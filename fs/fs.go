// Package fs provides file-based record storage in CSV and JSON formats.
//
// Writers buffer records in memory and flush on Close. Output is written
// to a temporary file and renamed into place so a failed run never leaves
// a half-written file behind.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/abrsjh/harvest"
)

// fieldOrder returns the sorted union of all record keys so that the
// CSV header is deterministic across runs.
func fieldOrder(records []harvest.Record) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	sort.Strings(fields)
	return fields
}

// stringify renders a record value for CSV output. Nested values are
// encoded as JSON so they survive a round trip through a single cell.
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []string, []any, map[string]any:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(encoded)
	default:
		return fmt.Sprint(value)
	}
}

// writeAtomic writes data to path via a temporary sibling file.
func writeAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "create output directory: %v", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "write output file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "replace output file: %v", err)
	}
	return nil
}
