package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smdiagram/internal/definition"
	"smdiagram/internal/flow"
	"smdiagram/internal/structuremap"
)

const smallMap = `
resourceType: StructureMap
name: Test
structure:
  - url: http://hl7.org/fhir/StructureDefinition/Patient
    mode: source
  - url: http://hl7.org/fhir/StructureDefinition/Bundle
    mode: target
group:
  - name: Main
    input:
      - name: src
        type: Patient
        mode: source
      - name: tgt
        type: Bundle
        mode: target
    rule:
      - name: setId
        source:
          - context: src
            element: identifier
            variable: v
        target:
          - context: tgt
            element: id
            transform: copy
            parameter:
              - valueId: v
      - name: setType
        target:
          - context: tgt
            element: type
            transform: copy
            parameter:
              - valueString: collection
      - name: link
        dependent:
          - name: Fill
            variable: [v, tgt]
`

func analyzeSmall(t *testing.T) *flow.Flow {
	t.Helper()

	sm, err := structuremap.Parse([]byte(smallMap))
	require.NoError(t, err)

	f, err := flow.NewAnalyzer(definition.CoreResolver{}, flow.DefaultConfig(), zerolog.Nop()).Analyze(t.Context(), sm)
	require.NoError(t, err)

	return f
}

func TestFlowDiagram(t *testing.T) {
	got, err := FlowDiagram(analyzeSmall(t), "")
	require.NoError(t, err)

	want := strings.TrimLeft(dedent.Dedent(`
		@startdot
		digraph "Test" {
		  graph [rankdir=LR, tooltip="Test"];
		  node [shape=plaintext, fontname="Helvetica", fontsize=10];
		  edge [fontname="Helvetica", fontsize=9];
		  source [label=<
		    <TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">
		      <TR><TD BGCOLOR="lightgrey"><B>Source: Patient</B></TD></TR>
		      <TR><TD PORT="src_Patient" ALIGN="LEFT">Patient as src</TD></TR>
		      <TR><TD PORT="src_Patient_identifier" ALIGN="LEFT">Patient.identifier as v</TD></TR>
		      <TR><TD PORT="src_lit1" ALIGN="LEFT">&#34;collection&#34;</TD></TR>
		    </TABLE>>];
		  target [label=<
		    <TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">
		      <TR><TD BGCOLOR="lightgrey"><B>Target: Bundle</B></TD></TR>
		      <TR><TD PORT="tgt_Bundle" ALIGN="LEFT">Bundle as tgt</TD></TR>
		      <TR><TD PORT="tgt_Bundle_id" ALIGN="LEFT">Bundle.id</TD></TR>
		      <TR><TD PORT="tgt_Bundle_type" ALIGN="LEFT">Bundle.type</TD></TR>
		    </TABLE>>];
		  source:src_Patient_identifier -> target:tgt_Bundle_id [label="setId"];
		  source:src_lit1 -> target:tgt_Bundle_type [label="setType"];
		  dep_1 [shape=diamond, style=filled, fillcolor=lightyellow, label="link"];
		  source:src_Patient_identifier -> dep_1 [style=dashed, label="Fill"];
		  dep_1 -> target:tgt_Bundle [style=dashed, label="Fill"];
		}
		@enddot
	`), "\n")

	assert.Equal(t, want, got)
}

func TestFlowDiagram_RankDir(t *testing.T) {
	got, err := FlowDiagram(analyzeSmall(t), "TB")
	require.NoError(t, err)
	assert.Contains(t, got, "graph [rankdir=TB, ")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, quote("plain"))
	assert.Equal(t, `"a \"b\" \\ c\nd"`, quote("a \"b\" \\ c\nd"))
}

func TestRowLabel(t *testing.T) {
	root := flow.RootPath("Patient")

	assert.Equal(t, "Patient", rowLabel(flow.Row{Path: root}, ""))
	assert.Equal(t, "Patient.name as n, m", rowLabel(flow.Row{Path: root.Child("name"), Names: []string{"n", "m"}}, ""))
	assert.Equal(t, "Patient.name : HumanName as n", rowLabel(flow.Row{Path: root.Child("name"), Names: []string{"n"}}, "HumanName"))
	assert.Equal(t, `"<x>"`, rowLabel(flow.Row{Path: flow.LiteralPath("<x>", 1)}, ""))
	assert.Equal(t, "&#34;&lt;x&gt;&#34;", htmlText(rowLabel(flow.Row{Path: flow.LiteralPath("<x>", 1)}, "")))
}

func TestFlowDiagram_ElementTypes(t *testing.T) {
	sm, err := structuremap.Parse([]byte(smallMap))
	require.NoError(t, err)

	reg, err := definition.LoadDir(filepath.Join(exampleDir(), "definitions"), zerolog.Nop())
	require.NoError(t, err)

	f, err := flow.NewAnalyzer(reg, flow.DefaultConfig(), zerolog.Nop()).Analyze(t.Context(), sm)
	require.NoError(t, err)

	got, err := FlowDiagram(f, "")
	require.NoError(t, err)

	assert.Contains(t, got, `<TD PORT="src_Patient" ALIGN="LEFT">Patient as src</TD>`)
	assert.Contains(t, got, `<TD PORT="src_Patient_identifier" ALIGN="LEFT">Patient.identifier : Identifier as v</TD>`)
	assert.Contains(t, got, `<TD PORT="tgt_Bundle_id" ALIGN="LEFT">Bundle.id : id</TD>`)
	assert.Contains(t, got, `<TD PORT="tgt_Bundle_type" ALIGN="LEFT">Bundle.type : code</TD>`)
	assert.Contains(t, got, `<TD PORT="src_lit1" ALIGN="LEFT">&#34;collection&#34;</TD>`)
}
