package storage

import (
	"fmt"
	"os"
	"strings"
)

// ReadChannels reads the tracked channel list, one name per line. Blank
// lines are skipped.
func ReadChannels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read channel list: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}

	return names, nil
}
