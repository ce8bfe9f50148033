// Package report appends key=value result lines for scripts that drive attrorder.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Write appends values to the file at path as sorted key=value lines.
// An empty path or empty values is a no-op. The file is created if missing.
func Write(path string, values map[string]string) error {
	path = strings.TrimSpace(path)
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open report %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", sanitize(key), sanitize(values[key])); err != nil {
			return fmt.Errorf("write report %q: %w", path, err)
		}
	}
	return nil
}

// sanitize keeps each entry on one line.
func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return strings.ReplaceAll(value, "=", "%3D")
}
