package structuremap

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=Transform -linecomment -output=transform_string.go

// Transform is the operation producing a target value.
// String returns the FHIR transform code.
type Transform int

const (
	TransformNone      Transform = iota // none
	TransformCreate                     // create
	TransformCopy                       // copy
	TransformTruncate                   // truncate
	TransformEscape                     // escape
	TransformCast                       // cast
	TransformAppend                     // append
	TransformTranslate                  // translate
	TransformReference                  // reference
	TransformDateOp                     // dateOp
	TransformUUID                       // uuid
	TransformPointer                    // pointer
	TransformEvaluate                   // evaluate
	TransformCC                         // cc
	TransformC                          // c
	TransformQty                        // qty
	TransformID                         // id
	TransformCP                         // cp

	transformCount = int(iota)
)

// ParseTransform maps a FHIR transform code to a Transform.
func ParseTransform(code string) (Transform, error) {
	if code == "" {
		return TransformNone, nil
	}

	for t := TransformCreate; int(t) < transformCount; t++ {
		if t.String() == code {
			return t, nil
		}
	}

	return TransformNone, fmt.Errorf("unknown transform %q", code)
}

// ProducesValue reports whether the transform takes its value from the first
// parameter, so that the parameter flows into the target element.
// Creation, evaluation, escaping and date operations build new values instead.
func (t Transform) ProducesValue() bool {
	switch t {
	case TransformCopy, TransformAppend, TransformTranslate, TransformCast,
		TransformTruncate, TransformReference, TransformPointer,
		TransformCC, TransformC:
		return true
	default:
		return false
	}
}

// UnmarshalYAML decodes a transform code.
func (t *Transform) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected transform code, got %v", node.Kind)
	}

	parsed, err := ParseTransform(node.Value)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalYAML encodes the transform code.
func (t Transform) MarshalYAML() (any, error) {
	if t == TransformNone {
		return nil, nil
	}

	return t.String(), nil
}

// UnmarshalJSON decodes a transform code.
func (t *Transform) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("expected transform code: %w", err)
	}

	parsed, err := ParseTransform(code)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalJSON encodes the transform code.
func (t Transform) MarshalJSON() ([]byte, error) {
	if t == TransformNone {
		return []byte("null"), nil
	}

	return json.Marshal(t.String())
}
