package checker

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// JSDocTag is a raw doc-tag record attached to a symbol's documentation
// comment: the tag name (without "@") plus its associated text.
type JSDocTag struct {
	Name string `json:"name"`
	Text string `json:"text,omitempty"`
}

// DocComment returns the flattened description text of the symbol's JSDoc
// comment. Parameter symbols resolve through the enclosing function's
// @param tag instead of a comment of their own.
func (c *Checker) DocComment(sym *Symbol) string {
	if sym.Decl == nil {
		return ""
	}

	switch sym.Decl.Kind() {
	case "required_parameter", "optional_parameter", "identifier",
		"rest_pattern", "object_pattern", "array_pattern":
		return c.paramDoc(sym)
	}

	desc, _ := parseJSDoc(docCommentText(sym.Decl, sym.File))
	return desc
}

// JSDocTags returns the symbol's raw doc-tag list. Parameter symbols have
// no tags of their own.
func (c *Checker) JSDocTags(sym *Symbol) []JSDocTag {
	if sym.Decl == nil {
		return nil
	}

	switch sym.Decl.Kind() {
	case "required_parameter", "optional_parameter", "identifier",
		"rest_pattern", "object_pattern", "array_pattern":
		return nil
	}

	_, tags := parseJSDoc(docCommentText(sym.Decl, sym.File))
	return tags
}

// paramDoc finds the @param tag matching the parameter's name on the
// enclosing function's JSDoc comment.
func (c *Checker) paramDoc(sym *Symbol) string {
	fn := enclosingFunction(sym.Decl)
	if fn == nil {
		return ""
	}
	_, tags := parseJSDoc(docCommentText(fn, sym.File))
	for _, tag := range tags {
		if tag.Name != "param" {
			continue
		}
		name, rest, _ := strings.Cut(tag.Text, " ")
		if name == sym.Name {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

var functionKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_signature":             true,
	"method_definition":              true,
	"method_signature":               true,
	"abstract_method_signature":      true,
	"arrow_function":                 true,
	"function_expression":            true,
	"function":                       true,
	"generator_function":             true,
}

func enclosingFunction(node *ts.Node) *ts.Node {
	current := node
	for depth := 0; current != nil && depth < 10; depth++ {
		if functionKinds[current.Kind()] {
			return current
		}
		current = current.Parent()
	}
	return nil
}

// docCommentText returns the raw text of the JSDoc comment preceding a
// declaration, or "" when there is none. Declarations wrapped in an
// export statement carry their comment on the wrapper.
func docCommentText(decl *ts.Node, file *SourceFile) string {
	start := decl
	if p := decl.Parent(); p != nil && p.Kind() == "export_statement" {
		start = p
	}

	prev := start.PrevNamedSibling()
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	text := file.Text(prev)
	if !strings.HasPrefix(text, "/**") {
		// Only JSDoc-style comments count as documentation.
		return ""
	}
	return text
}

// parseJSDoc flattens a JSDoc comment into a description and its tag
// list. Lines before the first @tag form the description; each tag
// collects its continuation lines until the next tag.
func parseJSDoc(comment string) (string, []JSDocTag) {
	if comment == "" {
		return "", nil
	}

	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimSuffix(comment, "*/")

	var descParts []string
	var tags []JSDocTag
	current := -1 // index into tags of the tag collecting continuations

	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "@") {
			name, rest, _ := strings.Cut(line[1:], " ")
			tags = append(tags, JSDocTag{Name: name, Text: strings.TrimSpace(rest)})
			current = len(tags) - 1
			continue
		}

		if current >= 0 {
			if tags[current].Text == "" {
				tags[current].Text = line
			} else {
				tags[current].Text += " " + line
			}
		} else {
			descParts = append(descParts, line)
		}
	}

	return strings.Join(descParts, " "), tags
}
