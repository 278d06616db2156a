package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML configuration document and validates it via
// Load. JSON is attempted first so numeric types stay predictable for JSON
// callers; YAML handles the rest.
func Parse(data []byte) (*Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: document is empty")
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err == nil {
		return Load(tree)
	}

	tree = nil
	if err := yaml.Unmarshal(data, &tree); err == nil {
		return Load(tree)
	}

	return nil, fmt.Errorf("config: invalid JSON or YAML document")
}

// ParseFS reads path from fsys and parses it. Convenience for callers that
// embed controller configuration alongside their templates.
func ParseFS(fsys fs.FS, path string) (*Config, error) {
	if fsys == nil {
		return nil, fmt.Errorf("config: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
