package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

// render builds x without any declared schemas; references fail.
func render(t *testing.T, src string) string {
	t.Helper()
	x, err := parseExpr(src)
	require.NoError(t, err, src)
	l := &loader{decls: map[string]*declaration{}, state: map[string]int{}, done: map[string]goshape.Shape{}}
	s, ok := l.build(x, goshape.Root(), goshape.Root())
	require.True(t, ok, "%s: %v", src, l.iss)
	return s.String()
}

func TestParseExpr_Shapes(t *testing.T) {
	cases := []struct{ src, want string }{
		{"string", "string"},
		{"string | null", "string | null"},
		{"| 'a' | 'b'", "'a' | 'b'"},
		{`"double"`, "'double'"},
		{"-1.5 | 0x10 | true", "-1.5 | 16 | true"},
		{"Promise<Promise<number>>", "Promise<Promise<number>>"},
		{"Partial<{a: string}>", "{ a?: string }"},
		{"string[]", "[...string[]]"},
		{"Array<string | number>", "[...(string | number)[]]"},
		{"number[][]", "[...[...number[]][]]"},
		{"[]", "[]"},
		{"[a: string, b?: number, ...c: boolean[]]", "[a: string, b?: number, ...c: boolean[]]"},
		{"[string, number?]", "[string, number?]"},
		{"(a: string) => void", "(a: string) => void"},
		{"() => () => any", "() => () => any"},
		{"(() => void) | null", "(() => void) | null"},
		{"(string | null)", "string | null"},
		{"{ readonly id: string; note?: string, 2: number }", "{ readonly id: string; note?: string; 2: number }"},
		{"{ readonly: boolean }", "{ readonly: boolean }"},
		{"{}", "{}"},
		{"undefined | never", "undefined"},
		{"Function | error | symbol | bigint | object", "Function | error | symbol | bigint | object"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, render(t, tc.src), tc.src)
	}
}

func TestParseExpr_Errors(t *testing.T) {
	for _, src := range []string{
		"",
		"   ",
		"string |",
		"Promise<string",
		"Map<string>",
		"'unterminated",
		"[...string]",
		"(a: string)",
		"{ a string }",
		"string)",
		"#",
	} {
		_, err := parseExpr(src)
		assert.Error(t, err, "%q", src)
	}
}

func TestParseExpr_RefsAreCollectedUnresolved(t *testing.T) {
	x, err := parseExpr("Value | Promise<Other.Name>")
	require.NoError(t, err)
	require.Equal(t, opUnion, x.op)
	assert.Equal(t, "Value", x.args[0].name)
	assert.Equal(t, "Other.Name", x.args[1].args[0].name)

	l := &loader{decls: map[string]*declaration{}, state: map[string]int{}, done: map[string]goshape.Shape{}}
	_, ok := l.build(x, goshape.Root().Field("x"), goshape.Root())
	assert.False(t, ok)
	require.Len(t, l.iss, 1)
	assert.Equal(t, goshape.CodeUnresolvedRef, l.iss[0].Code)
	assert.Equal(t, "/x", l.iss[0].Path)
}
