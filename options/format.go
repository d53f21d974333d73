package options

import (
	"fmt"
	"strings"
)

type FormatEnum int

const (
	FormatFlow     FormatEnum = 1 << iota // flow: source/target tables with value edges (PlantUML @startdot)
	FormatOverview                        // overview: groups, inputs and referenced elements (PlantUML class diagram)
	FormatRules                           // rules: plain text outline of the rule tree

	FormatAll  FormatEnum = (1 << iota) - 1 // all formats combined
	FormatNone FormatEnum = 0               // no formats selected
)

var formatNames = []struct {
	name   string
	format FormatEnum
}{
	{"flow", FormatFlow},
	{"overview", FormatOverview},
	{"rules", FormatRules},
}

// Has returns true if every format of other is selected in f.
func (f FormatEnum) Has(other FormatEnum) bool {
	return f&other == other
}

// Names returns the names of the selected formats in canonical order.
func (f FormatEnum) Names() []string {
	var names []string

	for _, n := range formatNames {
		if f.Has(n.format) {
			names = append(names, n.name)
		}
	}

	return names
}

// String joins the selected format names with ",".
func (f FormatEnum) String() string {
	if f == FormatNone {
		return "none"
	}

	return strings.Join(f.Names(), ",")
}

// ParseFormats parses format names such as "flow", "overview,rules" or "all".
func ParseFormats(names ...string) (FormatEnum, error) {
	var f FormatEnum

	for _, list := range names {
		for _, name := range strings.Split(list, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}

			if name == "all" {
				f |= FormatAll
				continue
			}

			found := false

			for _, n := range formatNames {
				if n.name == name {
					f |= n.format
					found = true

					break
				}
			}

			if !found {
				return FormatNone, fmt.Errorf("unknown diagram format %q", name)
			}
		}
	}

	return f, nil
}
