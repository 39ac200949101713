// Test Type: Unit Test
// Description: Tests for the trim handler - common indentation and reindenting

package trim

import (
	"context"
	"testing"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		to    int
		want  []string
	}{
		{
			name:  "common indentation removed",
			lines: []string{"    if (x) {", "        y();", "    }"},
			want:  []string{"if (x) {", "    y();", "}"},
		},
		{
			name:  "reindent",
			lines: []string{"\t\ta", "\t\t\tb"},
			to:    2,
			want:  []string{"  a", "  \tb"},
		},
		{
			name:  "blank lines do not count",
			lines: []string{"    a", "", "  ", "    b"},
			want:  []string{"a", "", "", "b"},
		},
		{
			name:  "only blank lines",
			lines: []string{"  ", ""},
			to:    1,
			want:  []string{" ", " "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trim(tt.lines, tt.to))
		})
	}
}

func TestHandle(t *testing.T) {
	d := document.New("/r/a.md", "a.md", []byte("<!-- snip A trim=\"to=1\" -->\n    x\n      y\n<!-- end snip -->\n"))
	ctx := &types.RunContext{Context: context.Background(), Snippets: snippet.NewStore(), Logger: zerolog.Nop()}

	require.NoError(t, New().Handle(ctx, d))
	assert.Equal(t, []string{`<!-- snip A trim="to=1" -->`, " x", "   y", "<!-- end snip -->"}, d.Lines())
}

func TestHandle_DefaultFromOptions(t *testing.T) {
	d := document.New("/r/a.md", "a.md", []byte("<!-- snip A trim -->\n    x\n<!-- end snip -->\n"))
	ctx := &types.RunContext{Context: context.Background(), Snippets: snippet.NewStore(), Logger: zerolog.Nop()}

	h := New(handlers.WithOptions(map[string]interface{}{"to": "4"}))
	require.NoError(t, h.Validate())
	require.NoError(t, h.Handle(ctx, d))
	assert.Equal(t, "    x", d.Lines()[1])
}

func TestHandle_BadNumber(t *testing.T) {
	d := document.New("/r/a.md", "a.md", []byte("<!-- snip A trim=\"to=x\" -->\n<!-- end snip -->\n"))
	ctx := &types.RunContext{Context: context.Background(), Snippets: snippet.NewStore(), Logger: zerolog.Nop()}

	err := New().Handle(ctx, d)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSegmentParams))
}
