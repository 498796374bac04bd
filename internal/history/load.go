package history

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/types"
)

// LoadHistory loads a structured history from a JSON file. Missing fields come back empty,
// never nil.
func LoadHistory(path string) (*types.StructuredHistory, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var h types.StructuredHistory
	if err := json.Unmarshal(content, &h); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	h.Normalize()
	return &h, nil
}

// SaveHistory writes a history as indented JSON
func SaveHistory(path string, h types.StructuredHistory) error {
	h.Normalize()
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
