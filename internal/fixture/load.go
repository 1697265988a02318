package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadJSONFile decodes the JSON file at path into v.
func LoadJSONFile(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding fixture %s: %w", path, err)
	}
	return nil
}

// LoadMarkupFile returns the markup file at path as text.
func LoadMarkupFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return string(data), nil
}
