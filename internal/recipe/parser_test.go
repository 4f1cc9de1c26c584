package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileContentInsert(t *testing.T) {
	content := `@insert(
  file(a.ws)
  below(class A {)
)
  puts("x");
`
	directives, diags := ParseFileContent(content, "my-mod", "a.cahirp")
	require.Empty(t, diags)
	require.Len(t, directives, 1)

	d := directives[0]
	assert.Equal(t, []string{"a.ws"}, d.Params.Files())
	assert.Equal(t, `puts("x");`, d.Code)
	assert.Equal(t, "my-mod", d.SourceMod)
	assert.Equal(t, "a.cahirp", d.SourceFile)
}

func TestParseFileContentMultipleForms(t *testing.T) {
	content := `@insert(
  file(a.ws)
  at(foo)
)
one
@insert(
  file(b.ws)
  at(bar)
)
two
`
	directives, diags := ParseFileContent(content, "mod", "f.cahirp")
	require.Empty(t, diags)
	require.Len(t, directives, 2)
	assert.Equal(t, "one", directives[0].Code)
	assert.Equal(t, "two", directives[1].Code)
}

func TestParseFileContentContextIsPrepended(t *testing.T) {
	content := `@context(
  file(a.ws)
)
@insert(
  at(foo)
)
one
@insert(
  at(bar)
)
two
`
	directives, diags := ParseFileContent(content, "mod", "f.cahirp")
	require.Empty(t, diags)
	require.Len(t, directives, 2)

	for _, d := range directives {
		assert.Equal(t, []string{"a.ws"}, d.Params.Files())
	}
}

func TestParseFileContentQuotedValue(t *testing.T) {
	content := `@insert(
  file(a.ws)
  at("some (paren) value")
)
code
`
	directives, diags := ParseFileContent(content, "mod", "f.cahirp")
	require.Empty(t, diags)
	require.Len(t, directives, 1)
	assert.Equal(t, "some (paren) value", directives[0].Params.values(KindAt)[0])
}

func TestParseFileContentMultilineSelect(t *testing.T) {
	content := `@insert(
  file(a.ws)
  select[[
  first line
  second line
  ]]
)
replacement
`
	directives, diags := ParseFileContent(content, "mod", "f.cahirp")
	require.Empty(t, diags)
	require.Len(t, directives, 1)

	params := directives[0].Params
	var found bool
	for _, p := range params {
		if p.Kind == KindMultilineSelect {
			found = true
			assert.Contains(t, p.Value, "first line")
			assert.Contains(t, p.Value, "second line")
		}
	}
	assert.True(t, found, "expected a KindMultilineSelect parameter")
}

func TestParseFileContentExportAndUse(t *testing.T) {
	content := `@insert(
  file(a.ws)
  at(foo)
  export(hook-one)
)
code
@insert(
  use(hook-one)
)
other
`
	directives, diags := ParseFileContent(content, "mod", "f.cahirp")
	require.Empty(t, diags)
	require.Len(t, directives, 2)

	key, ok := directives[0].Params.FirstExportKey()
	require.True(t, ok)
	assert.Equal(t, "hook-one", key)
}

func TestParseFileContentUnterminatedParamDiagnostic(t *testing.T) {
	content := `@insert(file(a.ws) at(unterminated
code
`
	directives, diags := ParseFileContent(content, "mod", "f.cahirp")
	assert.Empty(t, directives)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Error(), "f.cahirp")
	assert.Contains(t, diags[0].Error(), "mod")
}

func TestParseFileContentUnknownFormDiagnostic(t *testing.T) {
	content := `@bogus(file(a.ws))
code
`
	_, diags := ParseFileContent(content, "mod", "f.cahirp")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Error(), "unknown form")
}

func TestParseFileContentEmpty(t *testing.T) {
	directives, diags := ParseFileContent("", "mod", "f.cahirp")
	assert.Empty(t, directives)
	assert.Empty(t, diags)
}

func TestSplitForms(t *testing.T) {
	forms := splitForms("@insert(a)\nbody1\n@insert(b)\nbody2")
	require.Len(t, forms, 2)
	assert.Contains(t, forms[0], "body1")
	assert.Contains(t, forms[1], "body2")
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "hello", unquote(`"hello"`))
	assert.Equal(t, "hello", unquote("hello"))
	assert.Equal(t, `"`, unquote(`"`))
}
