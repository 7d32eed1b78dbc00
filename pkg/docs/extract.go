package docs

import (
	"fmt"
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/tsdocgen/pkg/checker"
)

// Extractor walks a program's syntax trees and collects DocEntry records
// for exported or public declarations.
type Extractor struct {
	checker *checker.Checker
	logger  *slog.Logger
}

// Extract produces the ordered documentation records for a program.
//
// File order and in-source declaration order are preserved; entries are
// not deduplicated by name. Declaration files (.d.ts) are skipped unless
// the program was built with IncludeDeclarations.
//
// Extraction is all-or-nothing: a symbol that resolves but has no
// declaring node aborts the whole run. Unresolvable symbols are silently
// skipped.
func Extract(program *checker.Program, logger *slog.Logger) ([]DocEntry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{checker: program.Checker(), logger: logger}

	entries := make([]DocEntry, 0)
	for _, file := range program.SourceFiles() {
		if file.IsDeclaration() && !program.Options().IncludeDeclarations {
			logger.Debug("skipping declaration file", "file", file.Path)
			continue
		}

		count := 0
		root := file.Root()
		for i := uint(0); i < root.NamedChildCount(); i++ {
			out, err := e.visit(root.NamedChild(i), file)
			if err != nil {
				return nil, err
			}
			for _, entry := range out {
				// Only top-level entries are stamped with the file path.
				entry.FileName = file.Path
				entries = append(entries, entry)
				count++
			}
		}

		logger.Debug("extracted file", "file", file.Path, "entries", count)
	}

	return entries, nil
}

// visit applies the visiting rule to one node and returns the records it
// contributes. The visibility gate is the first test applied to every
// node; nodes matching no recognized shape yield no records.
func (e *Extractor) visit(node *ts.Node, file *checker.SourceFile) ([]DocEntry, error) {
	if node == nil || !e.isDocumented(node, file) {
		return nil, nil
	}

	decl := node
	if node.Kind() == "export_statement" {
		d := node.ChildByFieldName("declaration")
		if d == nil {
			// Bare re-export lists (`export { a } from "./m"`) declare nothing.
			return nil, nil
		}
		decl = d
	}

	// `export declare ...` wraps the declaration once more.
	if decl.Kind() == "ambient_declaration" {
		if d := decl.NamedChild(0); d != nil {
			decl = d
		}
	}

	switch decl.Kind() {
	case "class_declaration", "abstract_class_declaration":
		return e.visitClass(decl, file)

	case "internal_module", "module":
		return e.visitNamespace(decl, file)

	case "method_definition", "method_signature", "abstract_method_signature":
		return e.visitCallable(decl, file, KindMethod)

	case "function_declaration", "generator_function_declaration", "function_signature":
		return e.visitCallable(decl, file, KindFunction)

	case "lexical_declaration", "variable_declaration":
		return e.visitVariableStatement(decl, file)

	default:
		return e.visitArrowBinding(decl, file)
	}
}

// isDocumented is the visibility gate: a declaration is eligible only if
// it carries an export wrapper or an explicit public accessibility
// modifier (class members).
func (e *Extractor) isDocumented(node *ts.Node, file *checker.SourceFile) bool {
	if node.Kind() == "export_statement" {
		return true
	}
	if p := node.Parent(); p != nil && p.Kind() == "export_statement" {
		return true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c != nil && c.Kind() == "accessibility_modifier" {
			return file.Text(c) == "public"
		}
	}
	return false
}

// visitClass serializes a named class: its own symbol, one reduced record
// per construct signature, and a methods list filled by recursively
// visiting the class body's direct children before the record is final.
func (e *Extractor) visitClass(decl *ts.Node, file *checker.SourceFile) ([]DocEntry, error) {
	name := decl.ChildByFieldName("name")
	if name == nil {
		// Unnamed classes carry no symbol to document.
		return nil, nil
	}
	sym := e.checker.SymbolAtNode(file, name)
	if sym == nil {
		return nil, nil
	}

	entry, err := e.serializeSymbol(sym)
	if err != nil {
		return nil, err
	}
	entry.Kind = KindClass

	for _, sig := range e.checker.ConstructSignaturesOf(decl, sym.Name, file) {
		sd, err := e.serializeSignature(sig)
		if err != nil {
			return nil, err
		}
		entry.Constructors = append(entry.Constructors, sd)
	}

	entry.Methods = make([]DocEntry, 0)
	if body := decl.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			out, err := e.visit(body.NamedChild(i), file)
			if err != nil {
				return nil, err
			}
			entry.Methods = append(entry.Methods, out...)
		}
	}

	return []DocEntry{entry}, nil
}

// visitNamespace treats namespace/module declarations as transparent
// containers: children contribute directly to the enclosing result.
func (e *Extractor) visitNamespace(decl *ts.Node, file *checker.SourceFile) ([]DocEntry, error) {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil, nil
	}

	var entries []DocEntry
	for i := uint(0); i < body.NamedChildCount(); i++ {
		out, err := e.visit(body.NamedChild(i), file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, out...)
	}
	return entries, nil
}

// visitCallable serializes a function or method declaration, including
// the parameters and return type of its call signature.
func (e *Extractor) visitCallable(decl *ts.Node, file *checker.SourceFile, kind EntryKind) ([]DocEntry, error) {
	var sym *checker.Symbol
	if name := decl.ChildByFieldName("name"); name != nil {
		sym = e.checker.SymbolAtNode(file, name)
	} else if kind == KindFunction {
		// `export default function () {}` binds the "default" symbol.
		sym = e.checker.SymbolForDefaultExport(file, decl)
	}
	if sym == nil {
		return nil, nil
	}

	entry, err := e.serializeSymbol(sym)
	if err != nil {
		return nil, err
	}
	entry.Kind = kind

	sig := e.checker.SignatureOf(decl, file)
	for _, p := range sig.Parameters {
		pe, err := e.serializeSymbol(p)
		if err != nil {
			return nil, err
		}
		entry.Parameters = append(entry.Parameters, pe)
	}
	entry.ReturnType = sig.ReturnType

	return []DocEntry{entry}, nil
}

// visitVariableStatement serializes the first declarator of a variable
// statement. Empty declarator lists and unresolvable symbols are skipped,
// matching the silent-skip policy used elsewhere.
func (e *Extractor) visitVariableStatement(decl *ts.Node, file *checker.SourceFile) ([]DocEntry, error) {
	var declarator *ts.Node
	for i := uint(0); i < decl.NamedChildCount(); i++ {
		if c := decl.NamedChild(i); c != nil && c.Kind() == "variable_declarator" {
			declarator = c
			break
		}
	}
	if declarator == nil {
		return nil, nil
	}

	sym := e.checker.SymbolAtNode(file, declarator.ChildByFieldName("name"))
	if sym == nil {
		return nil, nil
	}

	entry, err := e.serializeSymbol(sym)
	if err != nil {
		return nil, err
	}
	entry.Kind = KindConst
	return []DocEntry{entry}, nil
}

// visitArrowBinding is the catch-all path: search the node's descendants
// (first match wins, including the node itself) for an arrow function and
// serialize the enclosing variable declarator's symbol.
func (e *Extractor) visitArrowBinding(node *ts.Node, file *checker.SourceFile) ([]DocEntry, error) {
	arrow := findFirstOfKind(node, "arrow_function")
	if arrow == nil {
		return nil, nil
	}

	declarator := ancestorOfKind(arrow, "variable_declarator")
	if declarator == nil {
		return nil, nil
	}

	sym := e.checker.SymbolAtNode(file, declarator.ChildByFieldName("name"))
	if sym == nil {
		return nil, nil
	}

	entry, err := e.serializeSymbol(sym)
	if err != nil {
		return nil, err
	}
	entry.Kind = KindConst
	return []DocEntry{entry}, nil
}

// serializeSymbol produces the name/documentation/type/jsDocs record for
// a symbol. A symbol without a declaring node is a hard error: it aborts
// the entire extraction, there is no per-node isolation.
func (e *Extractor) serializeSymbol(sym *checker.Symbol) (DocEntry, error) {
	if sym.Decl == nil {
		return DocEntry{}, fmt.Errorf("symbol %q has no declaration", sym.Name)
	}
	return DocEntry{
		Name:          sym.Name,
		Documentation: e.checker.DocComment(sym),
		Type:          e.checker.TypeOf(sym),
		JSDocs:        e.checker.JSDocTags(sym),
	}, nil
}

// serializeSignature produces the reduced parameters/returnType/doc record
// for one signature.
func (e *Extractor) serializeSignature(sig *checker.Signature) (SignatureDoc, error) {
	sd := SignatureDoc{
		Parameters:    make([]DocEntry, 0, len(sig.Parameters)),
		ReturnType:    sig.ReturnType,
		Documentation: sig.Documentation,
	}
	for _, p := range sig.Parameters {
		pe, err := e.serializeSymbol(p)
		if err != nil {
			return SignatureDoc{}, err
		}
		sd.Parameters = append(sd.Parameters, pe)
	}
	return sd, nil
}

// findFirstOfKind searches depth-first for the first node of the given
// kind, including the node itself.
func findFirstOfKind(node *ts.Node, kind string) *ts.Node {
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if found := findFirstOfKind(node.NamedChild(i), kind); found != nil {
			return found
		}
	}
	return nil
}

// ancestorOfKind walks up the parent chain to the nearest node of the
// given kind.
func ancestorOfKind(node *ts.Node, kind string) *ts.Node {
	for current := node.Parent(); current != nil; current = current.Parent() {
		if current.Kind() == kind {
			return current
		}
	}
	return nil
}
