package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smdiagram/internal/structuremap"
)

func exampleDir() string {
	return filepath.Join("..", "..", "examples", "patient-bundle")
}

func loadExample(t *testing.T) *structuremap.StructureMap {
	t.Helper()

	sm, err := structuremap.LoadFile(filepath.Join(exampleDir(), "map.json"))
	require.NoError(t, err)

	return sm
}

func TestOverview_Example(t *testing.T) {
	got, err := Overview(loadExample(t))
	require.NoError(t, err)

	want := strings.TrimLeft(dedent.Dedent(`
		@startuml
		skinparam groupInheritance 2
		package "PatientToBundle" {
		  class PatientToBundle {
		    ..Sources..
		    src source
		    source.id
		    source.identifier
		    source.name
		    ..Targets..
		    tgt bundle
		    bundle.entry
		    bundle.entry.fullUrl
		    bundle.entry.resource
		    bundle.id
		    bundle.type
		  }
		  class CopyName {
		    ..Sources..
		    HumanName name
		    name.family
		    ..Targets..
		    Patient patient
		    patient.name
		    patient.name.family
		  }
		  PatientToBundle::source --> PatientToBundle::bundle
		  CopyName::name --> CopyName::patient
		  PatientToBundle ..> CopyName : resource
		}
		@enduml
	`), "\n")

	assert.Equal(t, want, got)
}

func TestOverview_CalleesFollowCallers(t *testing.T) {
	sm := &structuremap.StructureMap{
		Name: "Order",
		Group: []structuremap.Group{
			{Name: "Helper", Input: []structuremap.Input{{Name: "x", Type: "string"}}},
			callGroup("Main", "Helper"),
		},
	}

	got, err := Overview(sm)
	require.NoError(t, err)

	assert.Less(t, strings.Index(got, "class Main"), strings.Index(got, "class Helper"))
	assert.Contains(t, got, "..Unbound..\n    string x\n")
	assert.Contains(t, got, "Main ..> Helper : MainRule\n")
}

func TestReferencedElements_Types(t *testing.T) {
	rules := []structuremap.Rule{{
		Name: "r",
		Source: []structuremap.Source{
			{Context: "in", Element: "value", Type: "string", Variable: "v"},
			{Context: "other", Element: "ignored"},
		},
		Rule: []structuremap.Rule{{
			Source: []structuremap.Source{{Context: "v", Element: "extension"}},
		}},
	}}

	assert.Equal(t, []string{"in.value : string", "in.value.extension"},
		referencedElements(rules, "in", structuremap.InputModeSource))
	assert.Empty(t, referencedElements(rules, "in", structuremap.InputModeTarget))
}

func TestOverview_AliasesGroupNamesThatAreNotIdentifiers(t *testing.T) {
	sm := &structuremap.StructureMap{
		Name: "Ids",
		Group: []structuremap.Group{
			{
				Name: "patient-to.bundle",
				Input: []structuremap.Input{
					{Name: "src", Type: "Patient", Mode: structuremap.InputModeSource},
					{Name: "tgt", Type: "Bundle", Mode: structuremap.InputModeTarget},
				},
				Rule: []structuremap.Rule{{
					Name:      "go",
					Dependent: []structuremap.Dependent{{Name: "patient_to_bundle"}, {Name: "2nd"}},
				}},
			},
			{Name: "patient_to_bundle"},
			{Name: "2nd"},
		},
	}

	got, err := Overview(sm)
	require.NoError(t, err)

	assert.Contains(t, got, `class "patient-to.bundle" as patient_to_bundle {`)
	assert.Contains(t, got, `class "patient_to_bundle" as patient_to_bundle_2 {`)
	assert.Contains(t, got, `class "2nd" as _2nd {`)
	assert.Contains(t, got, "patient_to_bundle::src --> patient_to_bundle::tgt\n")
	assert.Contains(t, got, "patient_to_bundle ..> patient_to_bundle_2 : go\n")
	assert.Contains(t, got, "patient_to_bundle ..> _2nd : go\n")
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "Main", sanitizeID("Main"))
	assert.Equal(t, "a_b_c", sanitizeID("a-b.c"))
	assert.Equal(t, "_1x", sanitizeID("1x"))
	assert.Equal(t, "_", sanitizeID(""))
}
