package structuremap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"smdiagram/internal/common"
)

// ErrNotStructureMap is returned when a document decodes but is another resource.
var ErrNotStructureMap = errors.New("document is not a StructureMap")

// LoadFile loads and parses a StructureMap from a JSON or YAML file.
func LoadFile(path string) (*StructureMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure map %s: %w", path, err)
	}

	sm, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sm, nil
}

// Parse parses JSON or YAML data into a StructureMap.
func Parse(data []byte) (*StructureMap, error) {
	var sm StructureMap

	err := decode(data, &sm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse structure map: %w", err)
	}

	applyDefaults(&sm)

	if sm.ResourceType != ResourceType {
		return nil, fmt.Errorf("%w: resourceType %q", ErrNotStructureMap, sm.ResourceType)
	}

	return &sm, nil
}

// decode reads data as JSON when it holds a JSON object and as YAML otherwise.
// JSON escapes such as "\/" are not valid YAML.
func decode(data []byte, v any) error {
	data = common.TrimBOM(data)
	if common.IsJSONObject(data) {
		return json.Unmarshal(data, v)
	}

	return yaml.Unmarshal(data, v)
}

// applyDefaults fills in values a hand-written YAML document may omit.
func applyDefaults(sm *StructureMap) {
	if sm.ResourceType == "" {
		sm.ResourceType = ResourceType
	}
}

// Marshal serializes a StructureMap to YAML.
func Marshal(sm *StructureMap) ([]byte, error) {
	return yaml.Marshal(sm)
}
