package ndi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// ParseChangeFile reads a proposed-change file and normalizes it into the
// JSON change list the controller expects. JSON is tried first, YAML is the
// fallback; a single change object is wrapped into a one element list.
func ParseChangeFile(filePath string) (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("could not read change file '%s': %w", filePath, err)
	}
	changes, err := ParseChanges(data)
	if err != nil {
		return nil, ChangeParseErr{Path: filePath, Err: err}
	}
	return changes, nil
}

// ParseChanges normalizes raw change content, JSON or YAML, into a JSON list
func ParseChanges(data []byte) (json.RawMessage, error) {
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		var yamlParsed interface{}
		if yamlErr := yaml.Unmarshal(data, &yamlParsed); yamlErr != nil {
			return nil, fmt.Errorf("content is neither valid JSON (%v) nor valid YAML (%v)", err, yamlErr)
		}
		parsed = normalizeYAML(yamlParsed)
	}

	switch v := parsed.(type) {
	case []interface{}:
		// already a change list
	case map[string]interface{}:
		parsed = []interface{}{v}
	default:
		return nil, fmt.Errorf("change content must be an object or a list of objects, got %T", v)
	}

	out, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("could not re-encode changes: %w", err)
	}
	return out, nil
}

// normalizeYAML converts the map[interface{}]interface{} trees yaml.v2
// produces into the map[string]interface{} shape encoding/json can marshal
func normalizeYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		out := map[string]interface{}{}
		for key, value := range v {
			out[fmt.Sprintf("%v", key)] = normalizeYAML(value)
		}
		return out
	case []interface{}:
		for i := range v {
			v[i] = normalizeYAML(v[i])
		}
		return v
	default:
		return v
	}
}
