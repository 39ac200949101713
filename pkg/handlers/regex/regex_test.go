// Test Type: Unit Test
// Description: Tests for the regex handler - replace parsing, replacements, kill rules and escapes

package regex

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/params"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitReplace(t *testing.T) {
	tests := []struct {
		spec    string
		search  string
		replace string
		wantErr bool
	}{
		{spec: "/a/b/", search: "a", replace: "b"},
		{spec: "|x/y|z|", search: "x/y", replace: "z"},
		{spec: "///", search: "", replace: ""},
		{spec: "/a//", search: "a", replace: ""},
		{spec: "/a/b/c/", search: "a", replace: "b/c"},
		{spec: "/a", wantErr: true},
		{spec: "/ab|", wantErr: true},
		{spec: "/ab/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			search, replace, err := SplitReplace(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrDirective))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.search, search)
			assert.Equal(t, tt.replace, replace)
		})
	}
}

func compile(t *testing.T, h *Handler, directive string) *Rules {
	t.Helper()
	p, err := params.Parse(directive)
	require.NoError(t, err)
	rules, err := h.Compile(p)
	require.NoError(t, err)
	return rules
}

func TestRules_Apply(t *testing.T) {
	h := New()
	lines := []string{"int a = 1; // note", "// comment", "int b = 2;"}

	t.Run("replacements in order", func(t *testing.T) {
		rules := compile(t, h, `replace='/int/long/' replace='/long (\w+)/var $1/'`)
		assert.Equal(t, []string{"var a = 1; // note", "// comment", "var b = 2;"}, rules.Apply(lines))
	})

	t.Run("kill after replace", func(t *testing.T) {
		rules := compile(t, h, `replace='|\s*//.*||' kill='//'`)
		assert.Equal(t, []string{"int a = 1;", "", "int b = 2;"}, rules.Apply(lines))
	})

	t.Run("kill first", func(t *testing.T) {
		rules := compile(t, h, `replace='|\s*//.*||' kill='//' killFirst`)
		assert.Equal(t, []string{"int b = 2;"}, rules.Apply(lines))
	})

	t.Run("escape", func(t *testing.T) {
		rules := compile(t, h, `kill='^~s*//' escape='~'`)
		assert.Equal(t, []string{"int a = 1; // note", "int b = 2;"}, rules.Apply(lines))
	})
}

func TestRules_GroupReferences(t *testing.T) {
	h := New()
	tests := []struct {
		directive string
		line      string
		want      string
	}{
		{`replace='/(\w+)Impl/$1_impl/'`, "FooImpl bar", "Foo_impl bar"},
		{`replace='/(a)(b)/$2$1/'`, "ab", "ba"},
		{`replace='/(a)/$12/'`, "a", "a2"},
		{`replace='/(?P<word>\w+)!/${word}?/'`, "hey!", "hey?"},
		{`replace='/cost/\$5/'`, "cost", "$5"},
		{`replace='/x/\\\\/'`, "x", `\`},
	}
	for _, tt := range tests {
		t.Run(tt.directive, func(t *testing.T) {
			rules := compile(t, h, tt.directive)
			assert.Equal(t, []string{tt.want}, rules.Apply([]string{tt.line}))
		})
	}
}

func TestTemplate_Errors(t *testing.T) {
	for _, replace := range []string{`$`, `$x`, `$2`, `${open`, `a\`} {
		_, err := Template(replace, 1)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirective), replace)
	}
}

func TestCompile_Errors(t *testing.T) {
	h := New()
	for _, directive := range []string{`replace='/(/x/'`, `kill='('`} {
		p, err := params.Parse(directive)
		require.NoError(t, err)
		_, err = h.Compile(p)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern), directive)
	}
}

func TestHandle(t *testing.T) {
	d := document.New("/r/README.md", "README.md", []byte(strings.Join([]string{
		`<!-- snip A regex="replace='/Foo/Bar/' kill='DROP'" -->`,
		"```java",
		"new Foo();",
		"DROP me",
		"```",
	}, "\n")+"\n"))

	ctx := &types.RunContext{Context: context.Background(), Pass: 4, Snippets: snippet.NewStore(), Logger: zerolog.Nop()}
	h := New(handlers.WithPasses(4))
	require.NoError(t, h.Handle(ctx, d))

	assert.Equal(t, []string{
		`<!-- snip A regex="replace='/Foo/Bar/' kill='DROP'" -->`,
		"```java",
		"new Bar();",
		"```",
	}, d.Lines())
}

func TestHandle_BadReplaceNamesRegion(t *testing.T) {
	d := document.New("/r/README.md", "README.md", []byte("<!-- snip A regex=\"replace='/x'\" -->\n<!-- end snip -->\n"))
	ctx := &types.RunContext{Context: context.Background(), Snippets: snippet.NewStore(), Logger: zerolog.Nop()}

	err := New().Handle(ctx, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `region "A"`)
}
