// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package survey

import (
	"encoding/json"
	"fmt"
	"os"
)

const jsonIndent = "    "

// WriteArtifacts persists the counts and queries artifacts as flat JSON:
// one array per file, one object per technique in declaration order, each
// object keyed by year.
func WriteArtifacts(arts Artifacts, countsPath, queriesPath string) error {
	if err := writeJSON(countsPath, arts.Counts); err != nil {
		return fmt.Errorf("writing counts artifact: %w", err)
	}
	if err := writeJSON(queriesPath, arts.Queries); err != nil {
		return fmt.Errorf("writing queries artifact: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadCounts loads a previously written counts artifact. The slice index
// is the technique declaration order; year keys are parsed back to ints.
func ReadCounts(path string) ([]map[int]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading counts artifact: %w", err)
	}
	var counts []map[int]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("parsing counts artifact %s: %w", path, err)
	}
	return counts, nil
}
