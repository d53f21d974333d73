package render

import (
	"html"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"quote": quote,
}

// quote renders s as a double-quoted Graphviz or PlantUML string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// htmlText escapes s for a Graphviz HTML-like label.
func htmlText(s string) string {
	return html.EscapeString(s)
}
