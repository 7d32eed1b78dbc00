package checker

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Checker resolves symbols, type strings, and signatures for one program.
//
// Resolution is declaration-based: a symbol's type is rendered from its
// declared annotations (with literal inference for initialized variables),
// not inferred across files. That covers everything the doc extractor
// serializes.
type Checker struct {
	program *Program
}

// Symbol is a named, resolvable binding within the analyzed program.
// Decl is the declaring node (function_declaration, variable_declarator,
// method_definition, ...); it may be nil when the binding could not be
// traced to a declaration.
type Symbol struct {
	Name string
	Decl *ts.Node
	File *SourceFile
}

// Signature is the parameter/return-type shape of a callable or
// constructible entity, independent of its binding name.
type Signature struct {
	Parameters    []*Symbol
	ReturnType    string
	Documentation string
}

// declarationKinds are the node kinds a name identifier resolves up to.
var declarationKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_signature":             true,
	"method_definition":              true,
	"method_signature":               true,
	"abstract_method_signature":      true,
	"class_declaration":              true,
	"abstract_class_declaration":     true,
	"variable_declarator":            true,
	"required_parameter":             true,
	"optional_parameter":             true,
	"internal_module":                true,
	"module":                         true,
}

// SymbolAtNode resolves the symbol bound to a name identifier by walking
// up to its declaring node. Returns nil when nameNode is nil or empty —
// the caller's silent-skip policy applies. A returned symbol may still
// have a nil Decl when the walk finds no declaration.
func (c *Checker) SymbolAtNode(file *SourceFile, nameNode *ts.Node) *Symbol {
	if nameNode == nil {
		return nil
	}
	name := file.Text(nameNode)
	if name == "" {
		return nil
	}
	return &Symbol{Name: name, Decl: findDeclaration(nameNode), File: file}
}

// SymbolForDefaultExport builds the synthetic "default" symbol for an
// unnamed default-exported declaration.
func (c *Checker) SymbolForDefaultExport(file *SourceFile, decl *ts.Node) *Symbol {
	return &Symbol{Name: "default", Decl: decl, File: file}
}

// findDeclaration walks up from an identifier to the nearest enclosing
// declaration node. Depth-capped to guard against degenerate trees.
func findDeclaration(nameNode *ts.Node) *ts.Node {
	current := nameNode
	for depth := 0; current != nil && depth < 10; depth++ {
		if declarationKinds[current.Kind()] {
			return current
		}
		current = current.Parent()
	}
	return nil
}

// TypeOf renders the string form of a symbol's resolved type at its
// declaring location.
func (c *Checker) TypeOf(sym *Symbol) string {
	d := sym.Decl
	if d == nil {
		return "any"
	}

	switch d.Kind() {
	case "function_declaration", "generator_function_declaration", "function_signature",
		"method_definition", "method_signature", "abstract_method_signature":
		return c.functionTypeString(d, sym.File)

	case "class_declaration", "abstract_class_declaration":
		return "typeof " + sym.Name

	case "variable_declarator":
		if t := d.ChildByFieldName("type"); t != nil {
			return annotationText(t, sym.File)
		}
		if v := d.ChildByFieldName("value"); v != nil {
			return c.inferredTypeString(v, sym.File)
		}
		return "any"

	case "required_parameter", "optional_parameter":
		if t := d.ChildByFieldName("type"); t != nil {
			return annotationText(t, sym.File)
		}
		return "any"

	default:
		return "any"
	}
}

// SignatureOf computes the call signature of a function-like node.
func (c *Checker) SignatureOf(fn *ts.Node, file *SourceFile) *Signature {
	desc, _ := parseJSDoc(docCommentText(fn, file))
	return &Signature{
		Parameters:    c.ParametersOf(fn, file),
		ReturnType:    c.returnTypeString(fn, file),
		Documentation: desc,
	}
}

// ConstructSignaturesOf returns one signature per constructor declared in
// the class body. The return type of a construct signature is the class
// type itself.
func (c *Checker) ConstructSignaturesOf(classDecl *ts.Node, className string, file *SourceFile) []*Signature {
	body := classDecl.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var sigs []*Signature
	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		if member == nil || member.Kind() != "method_definition" {
			continue
		}
		name := member.ChildByFieldName("name")
		if name == nil || file.Text(name) != "constructor" {
			continue
		}
		desc, _ := parseJSDoc(docCommentText(member, file))
		sigs = append(sigs, &Signature{
			Parameters:    c.ParametersOf(member, file),
			ReturnType:    className,
			Documentation: desc,
		})
	}
	return sigs
}

// ParametersOf returns the formal parameters of a function-like node as
// symbols, in declaration order.
func (c *Checker) ParametersOf(fn *ts.Node, file *SourceFile) []*Symbol {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// Arrow functions may carry a single bare parameter.
		if p := fn.ChildByFieldName("parameter"); p != nil {
			return []*Symbol{{Name: file.Text(p), Decl: p, File: file}}
		}
		return nil
	}

	var out []*Symbol
	for i := uint(0); i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			name := p.ChildByFieldName("pattern")
			if name == nil {
				name = p.ChildByFieldName("name")
			}
			if name == nil {
				continue
			}
			out = append(out, &Symbol{Name: file.Text(name), Decl: p, File: file})
		case "identifier", "rest_pattern", "object_pattern", "array_pattern":
			// JavaScript grammar: parameters appear without a wrapper.
			out = append(out, &Symbol{Name: file.Text(p), Decl: p, File: file})
		}
	}
	return out
}

// functionTypeString renders a function-like declaration's type, e.g.
// "(a: number, b: number) => number".
func (c *Checker) functionTypeString(fn *ts.Node, file *SourceFile) string {
	params := c.ParametersOf(fn, file)
	parts := make([]string, 0, len(params))
	for _, p := range params {
		name := p.Name
		if p.Decl != nil && p.Decl.Kind() == "optional_parameter" {
			name += "?"
		}
		parts = append(parts, name+": "+c.TypeOf(p))
	}
	return "(" + strings.Join(parts, ", ") + ") => " + c.returnTypeString(fn, file)
}

// returnTypeString renders the declared return type. An unannotated
// callable falls back to "any": declaration-based resolution cannot see
// what the body actually returns.
func (c *Checker) returnTypeString(fn *ts.Node, file *SourceFile) string {
	if rt := fn.ChildByFieldName("return_type"); rt != nil {
		return annotationText(rt, file)
	}
	return "any"
}

// inferredTypeString renders a type from a variable initializer. Literal
// forms only; anything structural falls back to "any".
func (c *Checker) inferredTypeString(value *ts.Node, file *SourceFile) string {
	switch value.Kind() {
	case "number":
		return "number"
	case "string", "template_string":
		return "string"
	case "true", "false":
		return "boolean"
	case "null":
		return "null"
	case "undefined":
		return "undefined"
	case "arrow_function", "function_expression", "function", "generator_function":
		return c.functionTypeString(value, file)
	case "new_expression":
		if ctor := value.ChildByFieldName("constructor"); ctor != nil {
			return file.Text(ctor)
		}
		return "any"
	case "as_expression", "satisfies_expression":
		if t := value.NamedChild(1); t != nil {
			return file.Text(t)
		}
		return "any"
	case "array":
		return "any[]"
	default:
		return "any"
	}
}

// annotationText extracts the type text from a type_annotation node,
// which syntactically includes the leading ":".
func annotationText(annotation *ts.Node, file *SourceFile) string {
	if t := annotation.NamedChild(0); t != nil {
		return file.Text(t)
	}
	return strings.TrimSpace(strings.TrimPrefix(file.Text(annotation), ":"))
}
