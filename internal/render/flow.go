package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"smdiagram/internal/common"
	"smdiagram/internal/flow"
)

// DefaultRankDir lays the source table left of the target table.
const DefaultRankDir = "LR"

type flowData struct {
	Name    string
	Tooltip string
	RankDir string
	Nodes   []tableNode
	Edges   []edgeData
	Markers []markerNode
}

type tableNode struct {
	ID    string
	Title string
	Rows  []rowData
}

type rowData struct {
	Port  string
	Label string
}

type edgeData struct {
	From  string
	To    string
	Label string
}

type markerNode struct {
	ID    string
	Label string
	Edges []edgeData
}

var flowTemplate = template.Must(template.New("flow").Funcs(funcs).Parse(`@startdot
digraph {{quote .Name}} {
  graph [rankdir={{.RankDir}}, tooltip={{quote .Tooltip}}];
  node [shape=plaintext, fontname="Helvetica", fontsize=10];
  edge [fontname="Helvetica", fontsize=9];
{{- range .Nodes}}
  {{.ID}} [label=<
    <TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">
      <TR><TD BGCOLOR="lightgrey"><B>{{.Title}}</B></TD></TR>
{{- range .Rows}}
      <TR><TD PORT="{{.Port}}" ALIGN="LEFT">{{.Label}}</TD></TR>
{{- end}}
    </TABLE>>];
{{- end}}
{{- range .Edges}}
  {{.From}} -> {{.To}} [label={{quote .Label}}];
{{- end}}
{{- range .Markers}}
  {{.ID}} [shape=diamond, style=filled, fillcolor=lightyellow, label={{quote .Label}}];
{{- range .Edges}}
  {{.From}} -> {{.To}} [style=dashed, label={{quote .Label}}];
{{- end}}
{{- end}}
}
@enddot
`))

// FlowDiagram renders f as a PlantUML @startdot diagram.
func FlowDiagram(f *flow.Flow, rankDir string) (string, error) {
	data := buildFlowData(f, common.FirstNonEmpty(rankDir, DefaultRankDir))

	var buf bytes.Buffer
	if err := flowTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing flow template: %w", err)
	}

	return buf.String(), nil
}

func buildFlowData(f *flow.Flow, rankDir string) *flowData {
	data := &flowData{
		Name:    f.Document,
		Tooltip: common.FirstNonEmpty(f.URL, f.Document),
		RankDir: rankDir,
		Nodes: []tableNode{
			buildTableNode(f, flow.SideSource),
			buildTableNode(f, flow.SideTarget),
		},
	}

	for _, e := range f.Edges {
		from, okFrom := f.SourcePorts.Lookup(e.From)
		to, okTo := f.TargetPorts.Lookup(e.To)

		if !okFrom || !okTo {
			continue
		}

		data.Edges = append(data.Edges, edgeData{
			From:  sideNodeID(flow.SideSource) + ":" + from,
			To:    sideNodeID(flow.SideTarget) + ":" + to,
			Label: e.Rule,
		})
	}

	for i, entry := range f.Dependents.Entries() {
		marker := markerNode{
			ID:    "dep_" + strconv.Itoa(i+1),
			Label: entry.Rule,
		}

		for _, ref := range entry.Refs {
			port, ok := f.Ports(ref.Side).Lookup(ref.Path)
			if !ok {
				continue
			}

			anchor := sideNodeID(ref.Side) + ":" + port

			if ref.Side == flow.SideSource {
				marker.Edges = append(marker.Edges, edgeData{From: anchor, To: marker.ID, Label: ref.Invocation})
			} else {
				marker.Edges = append(marker.Edges, edgeData{From: marker.ID, To: anchor, Label: ref.Invocation})
			}
		}

		data.Markers = append(data.Markers, marker)
	}

	return data
}

func buildTableNode(f *flow.Flow, side flow.Side) tableNode {
	var types []string
	for _, s := range f.StructuresBySide(side) {
		types = append(types, s.Definition.TypeName())
	}

	title := strings.ToUpper(side.String()[:1]) + side.String()[1:]
	if len(types) > 0 {
		title += ": " + strings.Join(types, ", ")
	}

	node := tableNode{
		ID:    sideNodeID(side),
		Title: htmlText(title),
	}

	ports := f.Ports(side)

	for _, row := range f.Table(side).Rows() {
		port, ok := ports.Lookup(row.Path)
		if !ok {
			continue
		}

		elementType, _ := f.ElementType(side, row.Path)
		node.Rows = append(node.Rows, rowData{Port: port, Label: htmlText(rowLabel(row, elementType))})
	}

	return node
}

// rowLabel reads "path : Type as var1, var2". The type and the names are
// left out when unknown.
func rowLabel(row flow.Row, elementType string) string {
	label := row.Path.String()
	if elementType != "" {
		label += " : " + elementType
	}

	if len(row.Names) == 0 {
		return label
	}

	return label + " as " + strings.Join(row.Names, ", ")
}

func sideNodeID(side flow.Side) string {
	return side.String()
}
