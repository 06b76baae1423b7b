package parse

import "strings"

// Lines splits raw OCR output into trimmed, non-empty lines, preserving
// order. Empty or whitespace-only input yields an empty slice.
func Lines(raw string) []string {
	if raw == "" {
		return nil
	}
	split := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(split))
	for _, ln := range split {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}
