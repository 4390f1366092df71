package policy

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// Load reads a newline-delimited list of logins into a canonical
// (lower-cased) set. Blank lines and lines starting with # are skipped.
// A missing file yields an empty set, not an error.
func Load(path string) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}
