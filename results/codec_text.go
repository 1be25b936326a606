package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the rendered snapshot as an indented YAML tree. The
// document is a reporting view: reloading it yields plain mappings and
// scalars, not live StageResults. Parent directories are created as needed.
func (s *Store) WriteYAML(path string) error {
	data, err := yaml.Marshal(s.AllEntries())
	if err != nil {
		return fmt.Errorf("results: encode yaml for %s: %w", path, err)
	}
	if err := writeDocument(path, data); err != nil {
		return err
	}
	s.book.Info("wrote yaml results to %s", path)
	return nil
}

// WriteJSON writes the rendered snapshot as an indented JSON record. Same
// reporting scope as WriteYAML. Parent directories are created as needed.
func (s *Store) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s.AllEntries(), "", "    ")
	if err != nil {
		return fmt.Errorf("results: encode json for %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := writeDocument(path, data); err != nil {
		return err
	}
	s.book.Info("wrote json results to %s", path)
	return nil
}

// ReadYAMLDocument parses a previously written YAML results document back
// into rendered-snapshot form. It does not reconstruct a live Store; use
// LoadSnapshot for that.
func ReadYAMLDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("results: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("results: decode yaml %s: %w", path, err)
	}
	return doc, nil
}

// ReadJSONDocument parses a previously written JSON results document back
// into rendered-snapshot form only.
func ReadJSONDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("results: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("results: decode json %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument creates the parent directory and writes the file. Writes
// are not atomic; callers needing atomicity should write to a temporary
// path and rename.
func writeDocument(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("results: create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("results: write %s: %w", path, err)
	}
	return nil
}
