package candidate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Load reads the candidate analysis file: a JSON array of analyzed chats.
func Load(path string) ([]*Candidate, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates file: %w", err)
	}
	defer file.Close()

	var candidates []*Candidate
	if err := json.NewDecoder(file).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode candidates file %q: %w", path, err)
	}

	for _, c := range candidates {
		c.Profile.Normalize()
	}

	return candidates, nil
}

// Save writes the candidate list back, sorted by chat name for stable diffs.
func Save(path string, candidates []*Candidate) error {
	sorted := make([]*Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChatName < sorted[j].ChatName
	})

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open candidates file for writing: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sorted); err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}
	return nil
}
