// Test Type: Unit Test
// Description: Tests for output formats - parsing, reports and every renderer

package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/processor"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) *processor.Result {
	t.Helper()
	store := snippet.NewStore()
	require.NoError(t, store.Put(&snippet.Snippet{Name: "hello", Lines: []string{"a", "b"}, Source: "src/A.java", Line: 3}))
	return &processor.Result{
		Root:   "/project",
		Glob:   "**/*.*",
		DryRun: true,
		Passes: []int{1, 2, 3},
		Files: []processor.FileResult{
			{RelPath: "README.md", Configurations: []string{"markdown"}, Changed: true, Diff: "--- a\n+++ b\n-old\n+new\n"},
			{RelPath: "src/A.java", Configurations: []string{"java"}},
		},
		Snippets: store,
		Duration: 1500 * time.Millisecond,
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatAuto,
		"auto":     FormatAuto,
		"term":     FormatTerminal,
		"terminal": FormatTerminal,
		"TEXT":     FormatText,
		"json":     FormatJSON,
		"yml":      FormatYAML,
		"junit":    FormatJUnit,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("html")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFormatString(t *testing.T) {
	for _, name := range Formats {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(sampleResult(t), true, nil)
	assert.Equal(t, 1, r.Changed)
	assert.Equal(t, 2, r.Snippets, "epsilon is counted")
	assert.Equal(t, "1.5s", r.Duration)
	assert.True(t, r.Failed(), "check mode fails on changed files")

	r = NewReport(sampleResult(t), false, nil)
	assert.False(t, r.Failed())

	r = NewReport(nil, false, errors.New(errors.ErrSnippetNotFound, "missing"))
	assert.True(t, r.Failed())
	assert.Equal(t, "SNIPPET_NOT_FOUND", r.Error.Code)
	assert.Empty(t, r.Files)
}

func TestNewErrorReport_Location(t *testing.T) {
	err := errors.Wrap(
		errors.New(errors.ErrSnippetUnterminated, "not finished").At("src/A.java", 7),
		errors.ErrHandlerExecute, "snippet-reader failed")
	r := NewErrorReport(err)
	assert.Equal(t, "HANDLER_EXECUTE", r.Code)
	assert.Equal(t, "src/A.java", r.File)
	assert.Equal(t, 7, r.Line)
}

func TestNewSnippetReports(t *testing.T) {
	reports := NewSnippetReports(sampleResult(t).Snippets)
	require.Len(t, reports, 2)
	assert.Equal(t, "epsilon", reports[0].Name)
	assert.Equal(t, SnippetReport{Name: "hello", Source: "src/A.java", Line: 3, Lines: 2}, reports[1])

	assert.Empty(t, NewSnippetReports(nil))
}

func TestNewRenderer_AutoOnBuffer(t *testing.T) {
	r, err := NewRenderer(FormatAuto, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &textRenderer{}, r)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(NewReport(sampleResult(t), false, nil)))
	out := buf.String()
	assert.Contains(t, out, "dry run, no files written")
	assert.Contains(t, out, "outdated     README.md (markdown)")
	assert.Contains(t, out, "  +new")
	assert.NotContains(t, out, "src/A.java")
	assert.Contains(t, out, "1 of 2 files changed, 2 snippets, passes [1 2 3]")

	buf.Reset()
	require.NoError(t, r.RenderSnippets(NewSnippetReports(sampleResult(t).Snippets)))
	assert.Contains(t, buf.String(), "epsilon 0 lines built in")
	assert.Contains(t, buf.String(), "hello 2 lines src/A.java:3")

	buf.Reset()
	err = errors.New(errors.ErrSnippetNotFound, "snippet missing").WithDetail("file", "README.md")
	require.NoError(t, r.RenderError(err))
	assert.Equal(t, "Error: [SNIPPET_NOT_FOUND] snippet missing\n  file         README.md\n", buf.String())
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderReport(NewReport(sampleResult(t), false, nil)))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/project", got["root"])
	assert.Equal(t, float64(1), got["changed"])
	assert.Len(t, got["files"], 2)
	assert.NotContains(t, got, "error")
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatYAML, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderError(errors.New(errors.ErrConfigParse, "bad")))

	var got struct {
		Error ErrorReport `yaml:"error"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "CONFIG_PARSE", got.Error.Code)
}

func TestJUnitRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatJUnit, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderReport(NewReport(sampleResult(t), true, nil)))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	suite := doc.FindElement("//testsuite")
	require.NotNil(t, suite)
	assert.Equal(t, "2", suite.SelectAttrValue("tests", ""))
	assert.Equal(t, "1", suite.SelectAttrValue("failures", ""))
	assert.Equal(t, "1.500", suite.SelectAttrValue("time", ""))

	failures := doc.FindElements("//testcase/failure")
	require.Len(t, failures, 1)
	assert.Equal(t, "README.md is out of date", failures[0].SelectAttrValue("message", ""))
	assert.Contains(t, failures[0].Text(), "+new")

	buf.Reset()
	require.NoError(t, r.RenderMessage("ignored"))
	assert.Empty(t, buf.String())
}

func TestJUnitRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(FormatJUnit, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderError(errors.New(errors.ErrHandlerExecute, "boom")))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	el := doc.FindElement("//testcase/error")
	require.NotNil(t, el)
	assert.Equal(t, "HANDLER_EXECUTE", el.SelectAttrValue("type", ""))
}
