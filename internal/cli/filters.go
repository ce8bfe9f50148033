package cli

import "strings"

// parseNameList splits a comma-separated list, keeping order and dropping blanks.
// Names are case-sensitive.
func parseNameList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
