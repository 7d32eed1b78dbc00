// Package render turns an ordered DocEntry sequence into a single
// Markdown document. Rendering is pure string assembly: no I/O, no
// escaping of Markdown-special characters, and byte-identical output for
// identical input.
package render

import (
	"fmt"
	"strings"

	"github.com/gnana997/tsdocgen/pkg/docs"
)

// Markdown renders the documentation records as one Markdown document.
//
// Entries are partitioned by kind: a "Functions" section (when non-empty),
// a "Constants" section (when non-empty), then one top-level section per
// class entry, always emitted, with the class's methods rendered as
// subsections. Constructors are not rendered yet.
func Markdown(entries []docs.DocEntry) string {
	var funcs, consts, classes []docs.DocEntry
	for _, e := range entries {
		switch e.Kind {
		case docs.KindFunction:
			funcs = append(funcs, e)
		case docs.KindConst:
			consts = append(consts, e)
		case docs.KindClass:
			classes = append(classes, e)
		}
	}

	var b strings.Builder
	if len(funcs) > 0 {
		b.WriteString("# Functions\n\n")
		writeEntries(&b, funcs)
	}
	if len(consts) > 0 {
		b.WriteString("# Constants\n\n")
		writeEntries(&b, consts)
	}
	for _, class := range classes {
		fmt.Fprintf(&b, "# %s\n\n", class.Name)
		if class.Documentation != "" {
			b.WriteString(class.Documentation)
			b.WriteString("\n\n")
		}
		writeEntries(&b, class.Methods)
	}

	return b.String()
}

// writeEntries renders one subsection per entry: heading, documentation
// paragraph, a two-column name/type table, and a parameter list when the
// entry has parameters.
func writeEntries(b *strings.Builder, entries []docs.DocEntry) {
	for _, e := range entries {
		fmt.Fprintf(b, "## %s\n\n", e.Name)
		if e.Documentation != "" {
			b.WriteString(e.Documentation)
			b.WriteString("\n\n")
		}

		b.WriteString("| Name | Type |\n")
		b.WriteString("| ---------- | ---------- |\n")
		fmt.Fprintf(b, "| `%s` | `%s` |\n\n", e.Name, e.Type)

		if len(e.Parameters) > 0 {
			b.WriteString("Parameters:\n\n")
			for _, p := range e.Parameters {
				fmt.Fprintf(b, "* `%s`: %s\n", p.Name, p.Documentation)
			}
			b.WriteString("\n")
		}
	}
}
