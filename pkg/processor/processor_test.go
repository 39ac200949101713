// Test Type: Integration Test
// Description: Tests for the processor - pass scheduling, end-to-end runs on an in-memory tree, dry runs and failures

package processor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/filesystem"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/handlers/linenumber"
	"github.com/arthur-debert/snipper/pkg/handlers/lineskip"
	"github.com/arthur-debert/snipper/pkg/handlers/regex"
	"github.com/arthur-debert/snipper/pkg/handlers/snippets"
	"github.com/arthur-debert/snipper/pkg/testutil"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/project"

func lines(l ...string) string {
	return testutil.Lines(l...)
}

func setupFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	return testutil.MemoryTree(t, root, files)
}

func readFile(t *testing.T, fs types.FS, rel string) string {
	t.Helper()
	return testutil.ReadFile(t, fs, root+"/"+rel)
}

// recorder logs every invocation
type recorder struct {
	name   string
	passes types.PassSet
	log    *[]string
	fail   bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Passes() types.PassSet { return r.passes }

func (r *recorder) Handle(ctx *types.RunContext, doc *document.Document) error {
	*r.log = append(*r.log, fmt.Sprintf("%d %s %s", ctx.Pass, r.name, doc.RelPath))
	if r.fail {
		return errors.New(errors.ErrInternal, "boom")
	}
	return nil
}

func TestProcess_PassScheduling(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"b.md":      "b\n",
		"a.md":      "a\n",
		"c.java":    "c\n",
		"notes.txt": "n\n",
	})

	var log []string
	md := NewConfiguration().WithName("md").File(`\.md$`).Handler(
		&recorder{name: "h1", passes: types.NewPassSet(3, 1), log: &log},
		&recorder{name: "h2", passes: types.NewPassSet(1), log: &log},
	)
	java := NewConfiguration().File(`\.java$`).Handler(
		&recorder{name: "h3", passes: types.NewPassSet(2), log: &log},
	)

	p, err := New([]*Configuration{md, java}, "", WithRoot(root), WithFS(fs))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, p.Passes())

	result, err := p.Process(context.Background())
	require.NoError(t, err)

	want := []string{
		"1 h1 a.md",
		"1 h2 a.md",
		"1 h1 b.md",
		"1 h2 b.md",
		"2 h3 c.java",
		"3 h1 a.md",
		"3 h1 b.md",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("invocation order mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, result.Files, 3, "notes.txt matches no configuration")
	assert.Equal(t, []string{"config-2"}, result.Files[2].Configurations)
	assert.Len(t, result.Executions, 7)
	assert.Equal(t, 0, result.ChangedCount())
}

const sampleJava = `package sample;

public class Sample {
    // snippet Sample_main
    public static void main(String[] args) {
        // skip
        System.out.println("debug");
        // skip end
        System.out.println("Hello, World!");
    }
    // end snippet
}
`

func runPyConfigurations() []*Configuration {
	md := NewConfiguration().File(`.*\.md$`).Exclude("target").Handler(
		snippets.NewWriter(),
		snippets.NewReader(),
		regex.New(handlers.WithPasses(4)),
		linenumber.New(handlers.WithPasses(5)),
		lineskip.New(handlers.WithPasses(3)),
	)
	java := NewConfiguration().File(`.*\.java$`).Exclude("target").Handler(snippets.NewReader())
	return []*Configuration{md, java}
}

func TestProcess_EndToEnd(t *testing.T) {
	readme := lines(
		"# Sample",
		"",
		`<!-- snip Sample_main skip="do" number -->`,
		"```java",
		"stale",
		"```",
		"",
		`<!-- snip Sample_main regex="replace='/World/Gopher/'" -->`,
		"```java",
		"```",
	)
	fs := setupFS(t, map[string]string{
		"README.md":                         readme,
		"src/main/java/sample/Sample.java":  sampleJava,
		"target/classes/sample/Sample.java": strings.Replace(sampleJava, "World", "Target", 1),
		".git/objects/Sample.java":          "// snippet Sample_main\n// end snippet\n",
	})

	p, err := New(runPyConfigurations(), "**/*.*", WithRoot(root), WithFS(fs))
	require.NoError(t, err)

	result, err := p.Process(context.Background())
	require.NoError(t, err)

	want := lines(
		"# Sample",
		"",
		`<!-- snip Sample_main skip="do" number -->`,
		"```java",
		"1.     public static void main(String[] args) {",
		`2.         System.out.println("Hello, World!");`,
		"3.     }",
		"```",
		"",
		`<!-- snip Sample_main regex="replace='/World/Gopher/'" -->`,
		"```java",
		"    public static void main(String[] args) {",
		"        // skip",
		`        System.out.println("debug");`,
		"        // skip end",
		`        System.out.println("Hello, Gopher!");`,
		"    }",
		"```",
	)
	if diff := cmp.Diff(want, readFile(t, fs, "README.md")); diff != "" {
		t.Errorf("README.md mismatch (-want +got):\n%s", diff)
	}

	changed := result.Changed()
	require.Len(t, changed, 1)
	assert.Equal(t, "README.md", changed[0].RelPath)
	assert.True(t, changed[0].Written)
	assert.Equal(t, sampleJava, readFile(t, fs, "src/main/java/sample/Sample.java"))

	_, ok := result.Snippets.Get("Sample_main")
	assert.True(t, ok)

	t.Run("second run is stable", func(t *testing.T) {
		p, err := New(runPyConfigurations(), "**/*.*", WithRoot(root), WithFS(fs))
		require.NoError(t, err)

		result, err := p.Process(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, result.ChangedCount())
		assert.Equal(t, want, readFile(t, fs, "README.md"))
	})
}

func TestProcess_DryRunWithDiff(t *testing.T) {
	readme := lines("<!-- snip Sample_main -->", "```java", "```")
	fs := setupFS(t, map[string]string{
		"README.md":   readme,
		"Sample.java": sampleJava,
	})

	p, err := New(runPyConfigurations(), "", WithRoot(root), WithFS(fs), WithDryRun(true), WithDiff(true))
	require.NoError(t, err)

	result, err := p.Process(context.Background())
	require.NoError(t, err)
	assert.True(t, result.DryRun)

	changed := result.Changed()
	require.Len(t, changed, 1)
	assert.False(t, changed[0].Written)
	assert.Contains(t, changed[0].Diff, "--- a/README.md")
	assert.Contains(t, changed[0].Diff, "+++ b/README.md")
	assert.Contains(t, changed[0].Diff, `+        System.out.println("Hello, World!");`)

	assert.Equal(t, readme, readFile(t, fs, "README.md"), "dry run leaves files untouched")
}

func TestProcess_HandlerErrorAbortsRun(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"README.md":   lines("<!-- snip Missing -->", "<!-- end snip -->"),
		"OTHER.md":    lines("<!-- snip Sample_main -->", "<!-- end snip -->"),
		"Sample.java": sampleJava,
	})

	p, err := New(runPyConfigurations(), "", WithRoot(root), WithFS(fs))
	require.NoError(t, err)

	result, err := p.Process(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHandlerExecute))
	assert.True(t, errors.IsErrorCode(err, errors.ErrSnippetNotFound))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "md-snippet-writer", details["handler"])
	assert.Equal(t, 2, details["pass"])
	assert.Equal(t, "README.md", details["file"])

	require.NotNil(t, result.Failed())
	assert.Equal(t, lines("<!-- snip Sample_main -->", "<!-- end snip -->"), readFile(t, fs, "OTHER.md"),
		"files processed before the failure are not written")
}

func TestProcess_HandlerFilter(t *testing.T) {
	var log []string
	fs := setupFS(t, map[string]string{"a.md": "a\n"})
	c := NewConfiguration().Handler(
		&recorder{name: "keep", passes: types.NewPassSet(1), log: &log},
		&recorder{name: "drop", passes: types.NewPassSet(2), log: &log},
	)

	p, err := New([]*Configuration{c}, "", WithRoot(root), WithFS(fs),
		WithHandlerFilter(func(name string) bool { return name != "drop" }))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, p.Passes())

	_, err = p.Process(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1 keep a.md"}, log)
}

func TestProcess_Canceled(t *testing.T) {
	var log []string
	fs := setupFS(t, map[string]string{"a.md": "a\n", "b.md": "b\n"})
	c := NewConfiguration().Handler(&recorder{name: "h", passes: types.NewPassSet(1), log: &log})

	p, err := New([]*Configuration{c}, "", WithRoot(root), WithFS(fs), WithConcurrency(0))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Process(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
	assert.Empty(t, log)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		configs []*Configuration
		glob    string
		code    errors.ErrorCode
	}{
		{
			name:    "bad file regex",
			configs: []*Configuration{NewConfiguration().File("(")},
			code:    errors.ErrInvalidPattern,
		},
		{
			name:    "bad exclude regex",
			configs: []*Configuration{NewConfiguration().Exclude("[")},
			code:    errors.ErrInvalidPattern,
		},
		{
			name:    "bad handler options",
			configs: []*Configuration{NewConfiguration().Handler(regex.New(handlers.WithPasses(0)))},
			code:    errors.ErrHandlerOptions,
		},
		{
			name:    "nil configuration",
			configs: []*Configuration{nil},
			code:    errors.ErrInvalidInput,
		},
		{
			name:    "bad glob",
			configs: runPyConfigurations(),
			glob:    "[",
			code:    errors.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.configs, tt.glob, WithFS(filesystem.NewMemoryFS()))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}
