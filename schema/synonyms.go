package schema

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadSynonyms reads a line-oriented synonym file. Each line holds one
// comma-separated synonym group ("gov, government, federal"). Blank
// lines and lines starting with '#' are skipped. A missing or unreadable
// file is an error: the synonym list is a required static resource and
// must not be silently defaulted.
func LoadSynonyms(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open synonym file: %w", err)
	}
	defer f.Close()

	var groups [][]string
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		group := make([]string, 0, len(parts))
		for _, p := range parts {
			term := strings.ToLower(strings.TrimSpace(p))
			if term != "" {
				group = append(group, term)
			}
		}
		if len(group) < 2 {
			return nil, fmt.Errorf("synonym file line %d: group needs at least two terms", lineNo)
		}
		groups = append(groups, group)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read synonym file: %w", err)
	}

	return groups, nil
}
