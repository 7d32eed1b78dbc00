package checker

import (
	"testing"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/tsdocgen/pkg/parser"
)

// parseSource builds a one-file program for checker tests.
func parseSource(t *testing.T, path, source string) (*Checker, *SourceFile) {
	t.Helper()
	pm := parser.NewParserManager(nil)
	t.Cleanup(func() { _ = pm.Close() })

	p, err := NewProgramFromSources(
		[]SourceInput{{Path: path, Source: []byte(source)}},
		CompilerOptions{}, pm, nil)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	return p.Checker(), p.SourceFiles()[0]
}

// firstOfKind finds the first node of a kind, depth-first.
func firstOfKind(node *ts.Node, kind string) *ts.Node {
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if found := firstOfKind(node.NamedChild(i), kind); found != nil {
			return found
		}
	}
	return nil
}

func symbolOf(t *testing.T, c *Checker, file *SourceFile, declKind string) *Symbol {
	t.Helper()
	decl := firstOfKind(file.Root(), declKind)
	require.NotNil(t, decl, "no %s node in source", declKind)
	sym := c.SymbolAtNode(file, decl.ChildByFieldName("name"))
	require.NotNil(t, sym)
	return sym
}

func TestTypeOf_Function(t *testing.T) {
	c, file := parseSource(t, "math.ts",
		"export function add(a: number, b: number): number { return a + b; }")

	sym := symbolOf(t, c, file, "function_declaration")
	assert.Equal(t, "add", sym.Name)
	assert.Equal(t, "(a: number, b: number) => number", c.TypeOf(sym))
}

func TestTypeOf_FunctionNoAnnotations(t *testing.T) {
	c, file := parseSource(t, "app.js",
		"export function greet(name) { return 'hi ' + name; }")

	sym := symbolOf(t, c, file, "function_declaration")
	assert.Equal(t, "(name: any) => any", c.TypeOf(sym))
}

func TestTypeOf_OptionalParameter(t *testing.T) {
	c, file := parseSource(t, "greet.ts",
		"export function greet(name: string, title?: string): string { return name; }")

	sym := symbolOf(t, c, file, "function_declaration")
	assert.Equal(t, "(name: string, title?: string) => string", c.TypeOf(sym))
}

func TestTypeOf_Class(t *testing.T) {
	c, file := parseSource(t, "greeter.ts",
		"export class Greeter { greet(): string { return 'hi'; } }")

	sym := symbolOf(t, c, file, "class_declaration")
	assert.Equal(t, "typeof Greeter", c.TypeOf(sym))
}

func TestTypeOf_VariableAnnotation(t *testing.T) {
	c, file := parseSource(t, "config.ts",
		"export const endpoint: string = resolveEndpoint();")

	sym := symbolOf(t, c, file, "variable_declarator")
	assert.Equal(t, "string", c.TypeOf(sym))
}

func TestTypeOf_VariableInference(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"export const n = 42;", "number"},
		{"export const s = 'hello';", "string"},
		{"export const tpl = `hi ${x}`;", "string"},
		{"export const yes = true;", "boolean"},
		{"export const nothing = null;", "null"},
		{"export const missing = undefined;", "undefined"},
		{"export const items = [1, 2, 3];", "any[]"},
		{"export const anything = compute();", "any"},
		{"export const client = new HttpClient();", "HttpClient"},
		{"export const double = (x: number) => x * 2;", "(x: number) => any"},
		{"export const format = (n: number): string => String(n);", "(n: number) => string"},
	}

	for _, tt := range tests {
		c, file := parseSource(t, "vars.ts", tt.source)
		sym := symbolOf(t, c, file, "variable_declarator")
		assert.Equal(t, tt.want, c.TypeOf(sym), "source: %s", tt.source)
	}
}

func TestSignatureOf(t *testing.T) {
	c, file := parseSource(t, "math.ts", `
/**
 * Adds two numbers.
 * @param a The first number
 * @param b The second number
 */
export function add(a: number, b: number): number { return a + b; }
`)

	fn := firstOfKind(file.Root(), "function_declaration")
	require.NotNil(t, fn)

	sig := c.SignatureOf(fn, file)
	assert.Equal(t, "number", sig.ReturnType)
	assert.Equal(t, "Adds two numbers.", sig.Documentation)

	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, "a", sig.Parameters[0].Name)
	assert.Equal(t, "b", sig.Parameters[1].Name)
	assert.Equal(t, "number", c.TypeOf(sig.Parameters[0]))
}

func TestSignatureOf_UnannotatedReturnType(t *testing.T) {
	c, file := parseSource(t, "log.ts",
		"export function log(msg: string) { console.log(msg); }")

	fn := firstOfKind(file.Root(), "function_declaration")
	sig := c.SignatureOf(fn, file)
	assert.Equal(t, "any", sig.ReturnType, "no annotation means the return type is unknown")
}

func TestConstructSignaturesOf(t *testing.T) {
	c, file := parseSource(t, "greeter.ts", `
export class Greeter {
  /** Creates a greeter. */
  constructor(greeting: string) {}
  greet(): string { return ''; }
}
`)

	class := firstOfKind(file.Root(), "class_declaration")
	require.NotNil(t, class)

	sigs := c.ConstructSignaturesOf(class, "Greeter", file)
	require.Len(t, sigs, 1)
	assert.Equal(t, "Greeter", sigs[0].ReturnType)
	assert.Equal(t, "Creates a greeter.", sigs[0].Documentation)
	require.Len(t, sigs[0].Parameters, 1)
	assert.Equal(t, "greeting", sigs[0].Parameters[0].Name)
}

func TestConstructSignaturesOf_NoConstructor(t *testing.T) {
	c, file := parseSource(t, "empty.ts", "export class Empty {}")

	class := firstOfKind(file.Root(), "class_declaration")
	assert.Empty(t, c.ConstructSignaturesOf(class, "Empty", file))
}

func TestParametersOf_JavaScriptPatterns(t *testing.T) {
	c, file := parseSource(t, "app.js",
		"export function f(a, ...rest) {}")

	fn := firstOfKind(file.Root(), "function_declaration")
	params := c.ParametersOf(fn, file)
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, "...rest", params[1].Name)
}

func TestSymbolAtNode_NilName(t *testing.T) {
	c, file := parseSource(t, "x.ts", "export const x = 1;")
	assert.Nil(t, c.SymbolAtNode(file, nil))
}
