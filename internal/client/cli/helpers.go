package cli

import "strings"

const titleMaxRunes = 60

// noteTitle returns the first non-empty markdown line without heading marks
func noteTitle(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > titleMaxRunes {
			return string(runes[:titleMaxRunes-1]) + "…"
		}
		return line
	}
	return "(empty)"
}
