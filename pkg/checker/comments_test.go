package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSDoc_DescriptionOnly(t *testing.T) {
	desc, tags := parseJSDoc(`/**
 * Returns the current user.
 */`)
	assert.Equal(t, "Returns the current user.", desc)
	assert.Empty(t, tags)
}

func TestParseJSDoc_MultilineDescription(t *testing.T) {
	desc, _ := parseJSDoc(`/**
 * Returns the current user
 * from the session store.
 */`)
	assert.Equal(t, "Returns the current user from the session store.", desc)
}

func TestParseJSDoc_Tags(t *testing.T) {
	desc, tags := parseJSDoc(`/**
 * Adds two numbers.
 * @param a The first number
 * @param b The second number
 * @returns The sum
 */`)
	assert.Equal(t, "Adds two numbers.", desc)
	require.Len(t, tags, 3)
	assert.Equal(t, JSDocTag{Name: "param", Text: "a The first number"}, tags[0])
	assert.Equal(t, JSDocTag{Name: "param", Text: "b The second number"}, tags[1])
	assert.Equal(t, JSDocTag{Name: "returns", Text: "The sum"}, tags[2])
}

func TestParseJSDoc_TagContinuation(t *testing.T) {
	_, tags := parseJSDoc(`/**
 * @remarks This behavior is intentional
 * and spans two lines.
 */`)
	require.Len(t, tags, 1)
	assert.Equal(t, "This behavior is intentional and spans two lines.", tags[0].Text)
}

func TestParseJSDoc_BareTag(t *testing.T) {
	_, tags := parseJSDoc(`/** @deprecated */`)
	require.Len(t, tags, 1)
	assert.Equal(t, "deprecated", tags[0].Name)
	assert.Empty(t, tags[0].Text)
}

func TestParseJSDoc_Empty(t *testing.T) {
	desc, tags := parseJSDoc("")
	assert.Empty(t, desc)
	assert.Nil(t, tags)
}

func TestDocComment_ExportedFunction(t *testing.T) {
	c, file := parseSource(t, "api.ts", `
/**
 * Fetches a user by id.
 */
export function getUser(id: string): string { return id; }
`)

	sym := symbolOf(t, c, file, "function_declaration")
	assert.Equal(t, "Fetches a user by id.", c.DocComment(sym))
}

func TestDocComment_NonJSDocIgnored(t *testing.T) {
	c, file := parseSource(t, "api.ts", `
// plain line comment
export function f(): void {}
`)

	sym := symbolOf(t, c, file, "function_declaration")
	assert.Empty(t, c.DocComment(sym))
}

func TestDocComment_Parameter(t *testing.T) {
	c, file := parseSource(t, "math.ts", `
/**
 * Adds two numbers.
 * @param a The first number
 * @param b The second number
 */
export function add(a: number, b: number): number { return a + b; }
`)

	fn := firstOfKind(file.Root(), "function_declaration")
	params := c.ParametersOf(fn, file)
	require.Len(t, params, 2)

	assert.Equal(t, "The first number", c.DocComment(params[0]))
	assert.Equal(t, "The second number", c.DocComment(params[1]))
}

func TestDocComment_ParameterWithoutTag(t *testing.T) {
	c, file := parseSource(t, "math.ts",
		"export function id(x: number): number { return x; }")

	fn := firstOfKind(file.Root(), "function_declaration")
	params := c.ParametersOf(fn, file)
	require.Len(t, params, 1)
	assert.Empty(t, c.DocComment(params[0]))
}

func TestJSDocTags_OnDeclaration(t *testing.T) {
	c, file := parseSource(t, "api.ts", `
/**
 * Old API.
 * @deprecated use getUserV2 instead
 */
export function getUser(id: string): string { return id; }
`)

	sym := symbolOf(t, c, file, "function_declaration")
	tags := c.JSDocTags(sym)
	require.Len(t, tags, 1)
	assert.Equal(t, "deprecated", tags[0].Name)
	assert.Equal(t, "use getUserV2 instead", tags[0].Text)
}

func TestJSDocTags_ParameterHasNone(t *testing.T) {
	c, file := parseSource(t, "math.ts", `
/**
 * @param x The value
 */
export function id(x: number): number { return x; }
`)

	fn := firstOfKind(file.Root(), "function_declaration")
	params := c.ParametersOf(fn, file)
	require.Len(t, params, 1)
	assert.Nil(t, c.JSDocTags(params[0]))
}
