package structuremap

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResourceType is the FHIR resourceType of a StructureMap.
const ResourceType = "StructureMap"

// StructureMap is the root of a mapping document.
type StructureMap struct {
	ResourceType string      `json:"resourceType" yaml:"resourceType"`
	ID           string      `json:"id,omitempty" yaml:"id,omitempty"`
	URL          string      `json:"url,omitempty" yaml:"url,omitempty"`
	Version      string      `json:"version,omitempty" yaml:"version,omitempty"`
	Name         string      `json:"name,omitempty" yaml:"name,omitempty"`
	Title        string      `json:"title,omitempty" yaml:"title,omitempty"`
	Status       string      `json:"status,omitempty" yaml:"status,omitempty"`
	Structure    []Structure `json:"structure,omitempty" yaml:"structure,omitempty"`
	Import       []string    `json:"import,omitempty" yaml:"import,omitempty"`
	Group        []Group     `json:"group,omitempty" yaml:"group,omitempty"`
}

// Structure declares a source or target model participating in the map.
type Structure struct {
	URL           string    `json:"url" yaml:"url"`
	Mode          ModelMode `json:"mode" yaml:"mode"`
	Alias         string    `json:"alias,omitempty" yaml:"alias,omitempty"`
	Documentation string    `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// ModelMode is how a declared structure is used by the map.
type ModelMode string

const (
	ModelModeSource   ModelMode = "source"
	ModelModeQueried  ModelMode = "queried"
	ModelModeTarget   ModelMode = "target"
	ModelModeProduced ModelMode = "produced"
)

// IsValid returns true if the mode is a recognized value.
func (m ModelMode) IsValid() bool {
	switch m {
	case ModelModeSource, ModelModeQueried, ModelModeTarget, ModelModeProduced:
		return true
	default:
		return false
	}
}

// Role folds the four model modes into the two sides of a data flow.
// Queried models are read like sources, produced models are written like targets.
func (m ModelMode) Role() InputMode {
	switch m {
	case ModelModeSource, ModelModeQueried:
		return InputModeSource
	case ModelModeTarget, ModelModeProduced:
		return InputModeTarget
	default:
		return ""
	}
}

// InputMode is the role of a group input.
type InputMode string

const (
	InputModeSource InputMode = "source"
	InputModeTarget InputMode = "target"
)

// IsValid returns true if the mode is a recognized value.
// Inputs without a mode are unbound and still valid.
func (m InputMode) IsValid() bool {
	return m == "" || m == InputModeSource || m == InputModeTarget
}

// Group is a named set of rules with declared inputs.
type Group struct {
	Name          string  `json:"name" yaml:"name"`
	Extends       string  `json:"extends,omitempty" yaml:"extends,omitempty"`
	TypeMode      string  `json:"typeMode,omitempty" yaml:"typeMode,omitempty"`
	Documentation string  `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Input         []Input `json:"input,omitempty" yaml:"input,omitempty"`
	Rule          []Rule  `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Input is a declared group parameter.
type Input struct {
	Name string    `json:"name" yaml:"name"`
	Type string    `json:"type,omitempty" yaml:"type,omitempty"`
	Mode InputMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Rule is one transformation step. Rules nest.
type Rule struct {
	Name          string      `json:"name,omitempty" yaml:"name,omitempty"`
	Source        []Source    `json:"source,omitempty" yaml:"source,omitempty"`
	Target        []Target    `json:"target,omitempty" yaml:"target,omitempty"`
	Rule          []Rule      `json:"rule,omitempty" yaml:"rule,omitempty"`
	Dependent     []Dependent `json:"dependent,omitempty" yaml:"dependent,omitempty"`
	Documentation string      `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// Source is a source-match clause of a rule.
type Source struct {
	Context      string `json:"context" yaml:"context"`
	Min          *int   `json:"min,omitempty" yaml:"min,omitempty"`
	Max          string `json:"max,omitempty" yaml:"max,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Element      string `json:"element,omitempty" yaml:"element,omitempty"`
	ListMode     string `json:"listMode,omitempty" yaml:"listMode,omitempty"`
	Variable     string `json:"variable,omitempty" yaml:"variable,omitempty"`
	Condition    string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Check        string `json:"check,omitempty" yaml:"check,omitempty"`
}

// Target is a target-assignment clause of a rule.
type Target struct {
	Context   string      `json:"context,omitempty" yaml:"context,omitempty"`
	Element   string      `json:"element,omitempty" yaml:"element,omitempty"`
	Variable  string      `json:"variable,omitempty" yaml:"variable,omitempty"`
	ListMode  []string    `json:"listMode,omitempty" yaml:"listMode,omitempty"`
	Transform Transform   `json:"transform,omitempty" yaml:"transform,omitempty"`
	Parameter []Parameter `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// HasTransform returns true if the clause names a transform.
func (t *Target) HasTransform() bool {
	return t.Transform != TransformNone
}

// FirstParameter returns the first transform parameter, if any.
func (t *Target) FirstParameter() (Parameter, bool) {
	if len(t.Parameter) == 0 {
		return Parameter{}, false
	}

	return t.Parameter[0], true
}

// Parameter is a transform or dependent parameter: either a reference to a
// variable (valueId) or a literal constant.
type Parameter struct {
	ValueID       *string  `json:"valueId,omitempty" yaml:"valueId,omitempty"`
	ValueString   *string  `json:"valueString,omitempty" yaml:"valueString,omitempty"`
	ValueBoolean  *bool    `json:"valueBoolean,omitempty" yaml:"valueBoolean,omitempty"`
	ValueInteger  *int     `json:"valueInteger,omitempty" yaml:"valueInteger,omitempty"`
	ValueDecimal  *Decimal `json:"valueDecimal,omitempty" yaml:"valueDecimal,omitempty"`
	ValueDate     *string  `json:"valueDate,omitempty" yaml:"valueDate,omitempty"`
	ValueTime     *string  `json:"valueTime,omitempty" yaml:"valueTime,omitempty"`
	ValueDateTime *string  `json:"valueDateTime,omitempty" yaml:"valueDateTime,omitempty"`
}

// Decimal is a FHIR decimal kept in its lexical form, so "1.10" stays "1.10".
type Decimal string

// UnmarshalYAML keeps the scalar text as written.
func (d *Decimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected decimal, got %v", node.Kind)
	}

	*d = Decimal(node.Value)

	return nil
}

// MarshalYAML writes the decimal unquoted.
func (d Decimal) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: string(d)}, nil
}

// UnmarshalJSON keeps the number text as written.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected decimal: %w", err)
	}

	*d = Decimal(n)

	return nil
}

// MarshalJSON writes the decimal as a JSON number.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(d))
}

// IDParam builds a variable reference parameter.
func IDParam(name string) Parameter {
	return Parameter{ValueID: &name}
}

// StringParam builds a string literal parameter.
func StringParam(value string) Parameter {
	return Parameter{ValueString: &value}
}

// Variable returns the referenced variable name.
func (p Parameter) Variable() (string, bool) {
	if p.ValueID == nil || *p.ValueID == "" {
		return "", false
	}

	return *p.ValueID, true
}

// Literal returns the literal text of a constant parameter.
// String constants keep their raw text; other kinds use their FHIR lexical form.
func (p Parameter) Literal() (string, bool) {
	switch {
	case p.ValueString != nil:
		return *p.ValueString, true
	case p.ValueBoolean != nil:
		return strconv.FormatBool(*p.ValueBoolean), true
	case p.ValueInteger != nil:
		return strconv.Itoa(*p.ValueInteger), true
	case p.ValueDecimal != nil:
		return string(*p.ValueDecimal), true
	case p.ValueDate != nil:
		return *p.ValueDate, true
	case p.ValueTime != nil:
		return *p.ValueTime, true
	case p.ValueDateTime != nil:
		return *p.ValueDateTime, true
	default:
		return "", false
	}
}

// String renders the parameter the way the mapping language writes it.
func (p Parameter) String() string {
	if v, ok := p.Variable(); ok {
		return v
	}

	if p.ValueString != nil {
		return "'" + strings.ReplaceAll(*p.ValueString, "'", `\'`) + "'"
	}

	if lit, ok := p.Literal(); ok {
		return lit
	}

	return ""
}

// Dependent is a rule's invocation of another group or rule.
// R4 documents list plain variable names, R5 documents use typed parameters.
type Dependent struct {
	Name      string      `json:"name" yaml:"name"`
	Variable  []string    `json:"variable,omitempty" yaml:"variable,omitempty"`
	Parameter []Parameter `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// Parameters returns all invocation arguments, R4 variables first.
func (d *Dependent) Parameters() []Parameter {
	params := make([]Parameter, 0, len(d.Variable)+len(d.Parameter))
	for _, v := range d.Variable {
		params = append(params, IDParam(v))
	}

	return append(params, d.Parameter...)
}

// FirstGroup returns the group whose inputs seed the data flow.
func (sm *StructureMap) FirstGroup() (*Group, bool) {
	if sm == nil || len(sm.Group) == 0 {
		return nil, false
	}

	return &sm.Group[0], true
}

// StructuresByRole returns the structures whose mode folds into role.
func (sm *StructureMap) StructuresByRole(role InputMode) []Structure {
	var out []Structure

	for _, s := range sm.Structure {
		if s.Mode.Role() == role {
			out = append(out, s)
		}
	}

	return out
}

// Label returns the most readable identifier of the document.
func (sm *StructureMap) Label() string {
	switch {
	case sm.Name != "":
		return sm.Name
	case sm.ID != "":
		return sm.ID
	case sm.URL != "":
		return sm.URL
	default:
		return "StructureMap"
	}
}

// Walk visits the group's rules depth-first, parents before children.
func (g *Group) Walk(fn func(r *Rule, depth int)) {
	for i := range g.Rule {
		g.Rule[i].walk(fn, 0)
	}
}

func (r *Rule) walk(fn func(r *Rule, depth int), depth int) {
	fn(r, depth)

	for i := range r.Rule {
		r.Rule[i].walk(fn, depth+1)
	}
}
