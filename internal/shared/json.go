package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MarshalJSON serializes v, two-space indented when pretty is true.
//
// Indented output always ends with a trailing newline so written files diff cleanly.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if !pretty {
		return json.Marshal(v)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteJSONFile marshals v with two-space indentation and writes it to path,
// creating parent directories as needed. Existing files are overwritten.
func WriteJSONFile(path string, v any) error {
	data, err := MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
