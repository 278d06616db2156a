// Package confpath parses dot/bracket configuration paths and walks raw
// configuration trees. It backs the Resolve accessors exposed by pkg/config.
package confpath

import "strings"

// Segments splits a configuration path into its lookup segments. Both dotted
// notation ("update.form") and bracket notation ("fields[title].label") are
// accepted; empty segments are discarded.
func Segments(path string) []string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = replacer.Replace(clean)
	clean = strings.Trim(clean, ".")
	if clean == "" {
		return nil
	}

	parts := strings.Split(clean, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// Lookup walks tree following path. The boolean reports whether every segment
// resolved to a map entry.
func Lookup(tree map[string]any, path string) (any, bool) {
	segments := Segments(path)
	if len(segments) == 0 {
		return nil, false
	}

	var current any = tree
	for _, segment := range segments {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		value, exists := node[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// asMap normalises the map shapes produced by JSON and YAML decoding.
func asMap(value any) (map[string]any, bool) {
	switch node := value.(type) {
	case map[string]any:
		return node, true
	case map[any]any:
		out := make(map[string]any, len(node))
		for key, entry := range node {
			name, ok := key.(string)
			if !ok {
				continue
			}
			out[name] = entry
		}
		return out, true
	default:
		return nil, false
	}
}
